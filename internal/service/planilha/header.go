package planilha

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"marmoraria-pro/internal/storage"
)

// Header synonyms recognized on import, first match wins. These names are
// what the shop's existing spreadsheets use, keep them stable.
var (
	clientHeaders     = []string{"cliente", "nome", "client"}
	orderHeaders      = []string{"pedido", "order", "numero"}
	emailHeaders      = []string{"email", "e-mail"}
	phoneHeaders      = []string{"telefone", "phone", "celular"}
	statusHeaders     = []string{"status"}
	valueHeaders      = []string{"valor", "total"}
	notesHeaders      = []string{"observacoes", "notas"}
	commissionHeaders = []string{"comissao", "%"}
)

// importedEnvironmentName labels the single environment synthesized for
// each imported row.
const importedEnvironmentName = "Ambiente Importado"

// HeaderParser reads a CSV whose first line names the columns. The
// delimiter is ';' when the header line contains one, ',' otherwise.
type HeaderParser struct {
	// Now is swappable for tests; zero value uses time.Now.
	Now func() time.Time
}

func (hp *HeaderParser) now() time.Time {
	if hp.Now != nil {
		return hp.Now()
	}
	return time.Now()
}

var (
	intToken   = regexp.MustCompile(`^\d+$`)
	centsToken = regexp.MustCompile(`^\d{2}$`)
)

func (hp *HeaderParser) Parse(text string) ([]*storage.Project, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, nil
	}

	headerLine := lines[0]
	delimiter := ","
	if strings.Contains(headerLine, ";") {
		delimiter = ";"
	}

	headers := strings.Split(headerLine, delimiter)
	for i := range headers {
		headers[i] = strings.ToLower(stripQuotes(headers[i]))
	}

	today := hp.now().Format(storage.DateLayout)

	var projects []*storage.Project
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(line, delimiter)
		for i := range values {
			values[i] = stripQuotes(values[i])
		}
		if delimiter == "," {
			values = mergeDecimalCommas(values, len(headers))
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = at(values, i)
		}

		client := pick(fields, clientHeaders)
		if client == "" {
			continue
		}

		status := storage.ParseStatus(pick(fields, statusHeaders))
		value := parseAmount(pick(fields, valueHeaders))
		commission := parseAmount(pick(fields, commissionHeaders)).Float64()

		projects = append(projects, &storage.Project{
			ID:           uuid.NewString(),
			ClientName:   client,
			ClientEmail:  pick(fields, emailHeaders),
			ClientPhone:  pick(fields, phoneHeaders),
			OrderNumber:  pick(fields, orderHeaders),
			Status:       status,
			ReceivedDate: today,
			Environments: []storage.Environment{{
				ID:        uuid.NewString(),
				Name:      importedEnvironmentName,
				Value:     value,
				Completed: status == storage.StatusFinished,
			}},
			CommissionPercentage: commission,
			Notes:                pick(fields, notesHeaders),
			IsExternal:           true,
		})
	}

	return projects, nil
}

func pick(fields map[string]string, keys []string) string {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != "" {
			return v
		}
	}
	return ""
}

// mergeDecimalCommas repairs rows where a "1500,00" amount was split by the
// comma delimiter: a bare integer token followed by a two-digit token is
// glued back together until the row fits the header count.
func mergeDecimalCommas(values []string, want int) []string {
	for len(values) > want {
		merged := false
		for i := 0; i+1 < len(values); i++ {
			if intToken.MatchString(values[i]) && centsToken.MatchString(values[i+1]) {
				joined := values[i] + "," + values[i+1]
				values = append(values[:i], append([]string{joined}, values[i+2:]...)...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	return values
}

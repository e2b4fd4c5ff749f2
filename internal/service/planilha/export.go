package planilha

import (
	"fmt"
	"strings"
	"time"

	"marmoraria-pro/internal/service/calc"
	"marmoraria-pro/internal/storage"
)

// utf8BOM keeps Excel from misreading the accents in exported files.
const utf8BOM = "\xEF\xBB\xBF"

// Export headers double as an import contract: "Cliente", "Status" and
// "Total" are synonyms the HeaderParser recognizes, so an exported file
// re-imports with client, status and total value intact.
var exportHeaders = []string{
	"Pedido", "Cliente", "Telefone", "Email", "Status",
	"Data Recebimento", "Data Medicao", "Data Entrega", "Data Finalizacao",
	"Ambientes", "Total", "Valor Concluido", "Comissao", "Valor Comissao",
	"Observacoes",
}

// ExportCSV serializes the given (already filtered) project list into the
// fixed 15 column layout.
func ExportCSV(projects []*storage.Project) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(strings.Join(exportHeaders, ","))
	b.WriteString("\n")

	for _, p := range projects {
		row := []string{
			escapeField(p.OrderNumber),
			escapeField(p.ClientName),
			escapeField(p.ClientPhone),
			escapeField(p.ClientEmail),
			string(p.Status),
			p.ReceivedDate,
			p.MeasurementDate,
			p.DeadlineDate,
			p.FinishedDate,
			escapeField(environmentSummary(p)),
			calc.ProjectTotal(p).String(),
			calc.CompletedTotal(p).String(),
			fmt.Sprintf("%.2f", p.CommissionPercentage),
			calc.Commission(p).String(),
			escapeField(p.Notes),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// ExportFilename embeds the export date, e.g. "projetos_2024-06-10.csv".
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("projetos_%s.csv", now.Format(storage.DateLayout))
}

// environmentSummary renders one line per project like
// "Cozinha [Concluído] (R$1500.00); Banheiro (R$800.00)".
func environmentSummary(p *storage.Project) string {
	parts := make([]string, 0, len(p.Environments))
	for _, env := range p.Environments {
		mark := ""
		if env.Completed {
			mark = " [Concluído]"
		}
		parts = append(parts, fmt.Sprintf("%s%s (R$%s)", env.Name, mark, env.Value))
	}
	return strings.Join(parts, "; ")
}

// escapeField wraps fields containing commas, quotes or newlines in double
// quotes, doubling embedded quotes.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

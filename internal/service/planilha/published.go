package planilha

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"marmoraria-pro/internal/storage"
)

// Fixed column positions of the published production sheet. This layout is
// tied to one specific Google Sheets publish, not a general CSV shape.
const (
	publishedSkipLines = 4
	colReceivedDate    = 6
	colClient          = 7
	colRoom            = 8
	colMeasurementNote = 9
	colOrder           = 10
	colValue           = 11
)

// clientHeaderSentinel marks repeated header rows inside the data block.
const clientHeaderSentinel = "CLIENTE"

const defaultSyncCommission = 0.5

// PublishedSheetParser scrapes the shop's published Google sheet. Rows
// produce external projects with a deterministic composite id so a repeated
// sync overwrites instead of duplicating.
type PublishedSheetParser struct {
	// Now is swappable for tests; zero value uses time.Now.
	Now func() time.Time
}

func (pp *PublishedSheetParser) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PublishedSheetParser) Parse(text string) ([]*storage.Project, error) {
	lines := splitLines(text)
	today := pp.now().Format(storage.DateLayout)

	var projects []*storage.Project
	for i := publishedSkipLines; i < len(lines); i++ {
		if lines[i] == "" {
			continue
		}

		values := splitFields(lines[i])
		for j := range values {
			values[j] = stripQuotes(values[j])
		}

		client := at(values, colClient)
		if client == "" || client == clientHeaderSentinel {
			continue
		}

		room := at(values, colRoom)
		order := at(values, colOrder)
		value := parseBRL(at(values, colValue))
		if value <= 0 && room == "" {
			continue
		}

		received := at(values, colReceivedDate)
		if received == "" {
			received = today
		}

		projects = append(projects, &storage.Project{
			ID:           SyncID(order, client, room),
			ClientName:   client,
			OrderNumber:  order,
			Status:       storage.StatusInProgress,
			ReceivedDate: received,
			Environments: []storage.Environment{{
				ID:        uuid.NewString(),
				Name:      roomOrDefault(room),
				Value:     value,
				Completed: false,
			}},
			CommissionPercentage: defaultSyncCommission,
			Notes:                fmt.Sprintf("Importado via Google Sheets. Medição: %s", at(values, colMeasurementNote)),
			IsExternal:           true,
		})
	}

	return projects, nil
}

// SyncID builds the composite key that makes sheet rows idempotent across
// syncs.
func SyncID(order, client, room string) string {
	return fmt.Sprintf("sheet-%s-%s-%s", order, client, room)
}

func roomOrDefault(room string) string {
	if room == "" {
		return "Geral"
	}
	return room
}

package processor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/draft"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/medals"
)

// LoadLookups loads the draft table from draftPath and the medal table from
// medalsPath, falling back to the medal metadata service when medalsPath is empty.
func LoadLookups(ctx context.Context, client haloinfinite.Client, medalsPath, draftPath string) (Lookups, error) {
	draftTable, err := draft.Load(draftPath)
	if err != nil {
		return Lookups{}, err
	}

	var medalTable medals.Table
	if medalsPath != "" {
		medalTable, err = medals.LoadTable(medalsPath)
		if err != nil {
			return Lookups{}, err
		}
	} else {
		metadata, err := client.GetMedalMetadata(ctx)
		if err != nil {
			return Lookups{}, fmt.Errorf("failed to fetch medal metadata: %w", err)
		}
		medalTable = medals.TableFromMetadata(metadata)
	}
	log.Debug("Loaded lookups", "draftEntries", len(draftTable), "medals", len(medalTable))
	return Lookups{Medals: medalTable, Draft: draftTable}, nil
}

package config

import (
	"sort"
)

// Dump is the full configuration view served to admin frontends:
// anchor, menus sorted by effective date, closures, and restart points.
type Dump struct {
	StartDate string        `json:"start_date"`
	StartWeek int           `json:"start_week"`
	Menus     []MenuDump    `json:"menus"`
	Closures  []ClosureDump `json:"closures"`
	Restarts  []RestartDump `json:"restarts"`
}

type MenuDump struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EffectiveDate string `json:"effective_date"`
	TotalWeeks    int    `json:"total_weeks"`
	CSV           string `json:"csv"`
}

type ClosureDump struct {
	ID    string `json:"id"`
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

type RestartDump struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	ResumeWeek int    `json:"resume_week"`
}

const dumpDateLayout = "2006-01-02"

func (s *Service) Dump() (*Dump, error) {
	snap := s.Snapshot()
	if snap == nil {
		return nil, ErrNotConfigured
	}

	dump := &Dump{
		StartDate: snap.Cycle.StartDate.Format(dumpDateLayout),
		StartWeek: snap.Cycle.StartWeek,
	}

	for _, m := range snap.Menus {
		dump.Menus = append(dump.Menus, MenuDump{
			ID:            m.ID,
			Name:          m.Name,
			EffectiveDate: m.EffectiveDate.Format(dumpDateLayout),
			TotalWeeks:    m.Table.TotalWeeks(),
			CSV:           m.Table.CSV(),
		})
	}
	sort.SliceStable(dump.Menus, func(i, j int) bool {
		return dump.Menus[i].EffectiveDate < dump.Menus[j].EffectiveDate
	})

	for _, c := range snap.Closures {
		dump.Closures = append(dump.Closures, ClosureDump{
			ID:    c.ID,
			Start: c.Start.Format(dumpDateLayout),
			End:   c.End.Format(dumpDateLayout),
		})
	}

	for _, r := range snap.Restarts {
		dump.Restarts = append(dump.Restarts, RestartDump{
			ID:         r.ID,
			Date:       r.Date.Format(dumpDateLayout),
			ResumeWeek: r.ResumeWeek,
		})
	}
	return dump, nil
}

package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) Dashboard(ctx context.Context) {
	m, err := a.dashboard.Metrics(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("Quarterly target:   %10.2f kg\n", m.QuarterlyTarget)
	fmt.Printf("Total collected:    %10.2f kg (%.1f%%)\n", m.TotalCollected, m.PercentComplete)
	fmt.Printf("Remaining:          %10.2f kg\n", m.Remaining)
	fmt.Printf("Entities:           %10d\n", m.TotalEntities)
	fmt.Printf("Collections:        %10d\n", m.TotalCollections)
	fmt.Printf("Avg per collection: %10.2f kg\n", m.AvgKgPerCollection)
}

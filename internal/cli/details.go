package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

func (a *App) Details(ctx context.Context) {

	collectionID, err := GetSimpleText(a.reader, "Collection id (e.g. REC001)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	items, err := a.details.ListByCollection(ctx, collectionID)
	if err != nil {
		log.Println(err.Error())
		return
	}

	var total float64
	for _, d := range items {
		marker := " "
		if d.Pending {
			marker = "*"
		}
		fmt.Printf("%s %s  %-12s %8.2f kg\n", marker, d.ID, d.Material, d.WeightKg)
		total += d.WeightKg
	}
	fmt.Printf("  total: %.2f kg\n", total)
}

func (a *App) AddDetail(ctx context.Context) {

	collectionID, err := GetSimpleText(a.reader, "Collection id (e.g. REC001)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Println("Materials:")
	for i, m := range models.MaterialKinds() {
		fmt.Printf("  %d. %s\n", i+1, m)
	}
	material, err := GetSimpleText(a.reader, "Material (exact name)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	weightText, err := GetSimpleText(a.reader, "Weight (kg)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	weight, err := strconv.ParseFloat(weightText, 64)
	if err != nil {
		log.Printf("Error: invalid weight %q", weightText)
		return
	}

	d, err := a.details.Create(ctx, collectionID, models.MaterialKind(material), weight)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Printf("Created %s\n", d.ID)
}

func (a *App) DeleteDetail(ctx context.Context) {

	id, err := GetSimpleText(a.reader, "Enter detail id to delete")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.details.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Printf("Deleted %s; the removal is uploaded on the next sync\n", id)
}

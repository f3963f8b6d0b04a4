package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

func (a *App) Entities(ctx context.Context) {
	items, err := a.entities.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	for _, e := range items {
		marker := " "
		if e.Pending {
			marker = "*"
		}
		fmt.Printf("%s %s  %-30s %-22s visited %s\n", marker, e.ID, e.Name, e.Kind, e.VisitDate)
	}
}

func (a *App) AddEntity(ctx context.Context) {

	name, err := GetSimpleText(a.reader, "Entity name")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Println("Establishment types:")
	for i, k := range models.EstablishmentKinds() {
		fmt.Printf("  %d. %s\n", i+1, k)
	}
	choice, err := GetSimpleText(a.reader, "Type (exact name)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	visitDate, err := GetSimpleText(a.reader, "Visit date (YYYY-MM-DD)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	link, err := GetSimpleText(a.reader, "Folder link (optional)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	e, err := a.entities.Create(ctx, name, models.EstablishmentKind(choice), visitDate, link)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Printf("Created %s\n", e.ID)
}

func (a *App) DeleteEntity(ctx context.Context) {

	id, err := GetSimpleText(a.reader, "Enter entity id to delete (its collections and details go too)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.entities.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Printf("Deleted %s; the removal is uploaded on the next sync\n", id)
}

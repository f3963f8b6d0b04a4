package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) Collections(ctx context.Context) {
	items, err := a.collections.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	for _, c := range items {
		marker := " "
		if c.Pending {
			marker = "*"
		}
		fmt.Printf("%s %s  %s %-30s on %s\n", marker, c.ID, c.EntityID, c.EntityName, c.Date)
	}
}

func (a *App) AddCollection(ctx context.Context) {

	entityID, err := GetSimpleText(a.reader, "Entity id (e.g. ENT001)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	date, err := GetSimpleText(a.reader, "Collection date (YYYY-MM-DD)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	c, err := a.collections.Create(ctx, entityID, date)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Printf("Created %s for %s\n", c.ID, c.EntityName)
}

func (a *App) DeleteCollection(ctx context.Context) {

	id, err := GetSimpleText(a.reader, "Enter collection id to delete (its details go too)")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.collections.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	fmt.Printf("Deleted %s; the removal is uploaded on the next sync\n", id)
}

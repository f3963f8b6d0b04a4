package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
)

// Flag01 is the remote's deleted marker. Different producers send 1, "1" or
// true interchangeably; all three decode to true. It encodes as 0/1.
type Flag01 bool

func (f Flag01) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag01) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "1", `"1"`, "true":
		*f = true
	case "0", `"0"`, "false", "null", `""`:
		*f = false
	default:
		return fmt.Errorf("invalid deleted flag %s", b)
	}
	return nil
}

// Wire DTOs keep the field names the remote spreadsheet service uses.

type wireEntity struct {
	ID         string `json:"id"`
	Name       string `json:"nombre"`
	Kind       string `json:"tipo"`
	VisitDate  string `json:"fechaVisitaGestion"`
	FolderLink string `json:"linkCarpetaDrive,omitempty"`
	Deleted    Flag01 `json:"deleted,omitempty"`
}

type wireCollection struct {
	ID         string `json:"id"`
	EntityID   string `json:"idEntidad"`
	EntityName string `json:"nombreEntidad"`
	Date       string `json:"fechaRecoleccion"`
	Deleted    Flag01 `json:"deleted,omitempty"`
}

type wireDetail struct {
	ID             string  `json:"id"`
	CollectionID   string  `json:"idRecoleccion"`
	EntityID       string  `json:"idEntidad"`
	EntityName     string  `json:"nombreEntidad"`
	CollectionDate string  `json:"fechaRecoleccion"`
	Material       string  `json:"material"`
	WeightKg       float64 `json:"pesoKg"`
	Deleted        Flag01  `json:"deleted,omitempty"`
}

type wireMetrics struct {
	QuarterlyTarget float64 `json:"metaTrimestral"`
	TotalCollected  float64 `json:"totalRecolectado"`
	PercentComplete float64 `json:"percentCumplimiento"`
}

type wirePayload struct {
	Entities    []wireEntity     `json:"entidades"`
	Collections []wireCollection `json:"recolecciones"`
	Details     []wireDetail     `json:"detalles"`
}

func toWireEntity(e models.Entity) wireEntity {
	return wireEntity{
		ID:         e.ID,
		Name:       e.Name,
		Kind:       string(e.Kind),
		VisitDate:  e.VisitDate,
		FolderLink: e.FolderLink,
		Deleted:    Flag01(e.Deleted),
	}
}

func toWireCollection(c models.Collection) wireCollection {
	return wireCollection{
		ID:         c.ID,
		EntityID:   c.EntityID,
		EntityName: c.EntityName,
		Date:       c.Date,
		Deleted:    Flag01(c.Deleted),
	}
}

func toWireDetail(d models.Detail) wireDetail {
	return wireDetail{
		ID:             d.ID,
		CollectionID:   d.CollectionID,
		EntityID:       d.EntityID,
		EntityName:     d.EntityName,
		CollectionDate: d.CollectionDate,
		Material:       string(d.Material),
		WeightKg:       d.WeightKg,
		Deleted:        Flag01(d.Deleted),
	}
}

// Date fields arrive as full timestamps when the spreadsheet stores them as
// dates; they are normalized to YYYY-MM-DD on the way in.

func fromWireEntity(w wireEntity) models.Entity {
	return models.Entity{
		ID:         w.ID,
		Name:       w.Name,
		Kind:       models.EstablishmentKind(w.Kind),
		VisitDate:  models.NormalizeDate(w.VisitDate),
		FolderLink: w.FolderLink,
	}
}

func fromWireCollection(w wireCollection) models.Collection {
	return models.Collection{
		ID:         w.ID,
		EntityID:   w.EntityID,
		EntityName: w.EntityName,
		Date:       models.NormalizeDate(w.Date),
	}
}

func fromWireDetail(w wireDetail) models.Detail {
	return models.Detail{
		ID:             w.ID,
		CollectionID:   w.CollectionID,
		EntityID:       w.EntityID,
		EntityName:     w.EntityName,
		CollectionDate: models.NormalizeDate(w.CollectionDate),
		Material:       models.MaterialKind(w.Material),
		WeightKg:       w.WeightKg,
	}
}

func toWirePayload(b Batch) wirePayload {
	p := wirePayload{
		Entities:    make([]wireEntity, 0, len(b.Entities)),
		Collections: make([]wireCollection, 0, len(b.Collections)),
		Details:     make([]wireDetail, 0, len(b.Details)),
	}
	for _, e := range b.Entities {
		p.Entities = append(p.Entities, toWireEntity(e))
	}
	for _, c := range b.Collections {
		p.Collections = append(p.Collections, toWireCollection(c))
	}
	for _, d := range b.Details {
		p.Details = append(p.Details, toWireDetail(d))
	}
	return p
}

// envelope is the request body common to every POST action.
type envelope struct {
	Action  string `json:"action"`
	Token   string `json:"token"`
	Device  string `json:"device,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

type dataResponse struct {
	Entities    []wireEntity     `json:"entidades"`
	Collections []wireCollection `json:"recolecciones"`
	Details     []wireDetail     `json:"detalles"`
	Metrics     wireMetrics      `json:"metrics"`
	Error       string           `json:"error"`
}

type syncResponse struct {
	Success bool `json:"success"`
	Added   struct {
		Entities    []string `json:"entidades"`
		Collections []string `json:"recolecciones"`
		Details     []string `json:"detalles"`
	} `json:"added"`
	Logs  []string `json:"logs"`
	Error string   `json:"error"`
}

func decodeBody(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrRejected, err)
	}
	return nil
}

// Package models defines the record families persisted in the local store
// and synchronized with the remote system of record.
package models

// EstablishmentKind classifies an Entity. Values are the exact strings the
// remote stores, so they travel unchanged over the wire.
type EstablishmentKind string

const (
	KindEducational        EstablishmentKind = "Institución Educativa"
	KindCompany            EstablishmentKind = "Empresa/Entidad"
	KindHotel              EstablishmentKind = "Hotel"
	KindResidentialComplex EstablishmentKind = "Conjunto residencial"
	KindActivities         EstablishmentKind = "Actividades GS"
)

// EstablishmentKinds lists the valid kinds in display order.
func EstablishmentKinds() []EstablishmentKind {
	return []EstablishmentKind{
		KindEducational, KindCompany, KindHotel,
		KindResidentialComplex, KindActivities,
	}
}

func (k EstablishmentKind) Valid() bool {
	switch k {
	case KindEducational, KindCompany, KindHotel, KindResidentialComplex, KindActivities:
		return true
	}
	return false
}

// MaterialKind classifies a Detail line item.
type MaterialKind string

const (
	MaterialPET       MaterialKind = "PET"
	MaterialCardboard MaterialKind = "Cartón"
	MaterialPlastic   MaterialKind = "Plástico"
	MaterialPaper     MaterialKind = "Papel"
	MaterialGlass     MaterialKind = "Vidrio"
	MaterialOrganic   MaterialKind = "Orgánico"
	MaterialScrap     MaterialKind = "Chatarra"
	MaterialArchive   MaterialKind = "Archivo"
)

// MaterialKinds lists the valid materials in display order.
func MaterialKinds() []MaterialKind {
	return []MaterialKind{
		MaterialPET, MaterialCardboard, MaterialPlastic, MaterialPaper,
		MaterialGlass, MaterialOrganic, MaterialScrap, MaterialArchive,
	}
}

func (m MaterialKind) Valid() bool {
	switch m {
	case MaterialPET, MaterialCardboard, MaterialPlastic, MaterialPaper,
		MaterialGlass, MaterialOrganic, MaterialScrap, MaterialArchive:
		return true
	}
	return false
}

// Entity is an organization/site being tracked (school, hotel, etc.).
type Entity struct {
	// ID is the human-readable sequential identifier (ENT001, ENT002, ...).
	ID   string
	Name string
	Kind EstablishmentKind

	// VisitDate is a calendar date in YYYY-MM-DD form.
	VisitDate string

	// FolderLink is an optional external document folder URL.
	FolderLink string

	// Pending marks local changes not yet acknowledged by the remote.
	Pending bool

	// Deleted marks the record as a tombstone: logically deleted locally,
	// retained until the remote confirms the deletion.
	Deleted bool
}

// Collection is one visit/pickup event tied to an Entity.
//
// EntityName is a display snapshot taken when the record is written; it is
// not kept live-updated when the parent Entity is renamed.
type Collection struct {
	ID         string
	EntityID   string
	EntityName string
	Date       string
	Pending    bool
	Deleted    bool
}

// Detail is one material-weight line item tied to a Collection.
//
// EntityID, EntityName and CollectionDate are snapshots of the owning
// records at write time, denormalized so lists render without joins.
type Detail struct {
	ID             string
	CollectionID   string
	EntityID       string
	EntityName     string
	CollectionDate string
	Material       MaterialKind
	WeightKg       float64
	Pending        bool
	Deleted        bool
}

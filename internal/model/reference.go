package model

import "time"

// Province partitions the public catalog geographically. Seeded, never edited over HTTP.
type Province struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
}

// ActivationCode grants exactly one registration; redeeming it deletes the row
type ActivationCode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"type:varchar(64);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultProvinces is the seed list for the provinces table
var DefaultProvinces = []string{
	"Pinar del Río",
	"Artemisa",
	"La Habana",
	"Mayabeque",
	"Matanzas",
	"Cienfuegos",
	"Villa Clara",
	"Sancti Spíritus",
	"Ciego de Ávila",
	"Camagüey",
	"Las Tunas",
	"Holguín",
	"Granma",
	"Santiago de Cuba",
	"Guantánamo",
	"Isla de la Juventud",
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalRow una línea del journal del día en forma canónica.
type JournalRow struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Type         string          `json:"type"`
	Partner      string          `json:"partner"`
	Product      string          `json:"product"`
	Quantite     decimal.Decimal `json:"quantite"`
	PrixUnitaire decimal.Decimal `json:"prixUnitaire"`
	PrixAchat    decimal.Decimal `json:"prixAchat"`
	MontantTotal decimal.Decimal `json:"montantTotal"`
	MontantPaye  decimal.Decimal `json:"montantPaye"`
	Reste        decimal.Decimal `json:"reste"`
}

// StatsResponse tablero de estadísticas.
type StatsResponse struct {
	Message              string          `json:"message"`
	TotalProduits        int64           `json:"totalProduits"`
	TotalClients         int64           `json:"totalClients"`
	TotalFournisseurs    int64           `json:"totalFournisseurs"`
	TotalFactures        int64           `json:"totalFactures"`
	FacturesClients      int64           `json:"facturesClients"`
	FacturesFournisseurs int64           `json:"facturesFournisseurs"`
	ValeurProduits       decimal.Decimal `json:"valeurProduits"`
	VentesMensuelles     decimal.Decimal `json:"ventesMensuelles"`
	AchatsMensuels       decimal.Decimal `json:"achatsMensuels"`
	MargesMensuelles     decimal.Decimal `json:"margesMensuelles"`
	TodayJournal         []JournalRow    `json:"todayJournal"`
}

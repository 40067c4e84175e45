package accounts

import "github.com/cleared-dev/mayores/internal/model"

// DefaultCatalog returns the starter chart every new project is seeded with.
func DefaultCatalog() []model.CatalogEntry {
	return []model.CatalogEntry{
		{Name: "Caja", Classification: model.ClassAsset},
		{Name: "Bancos", Classification: model.ClassAsset},
		{Name: "Clientes", Classification: model.ClassAsset},
		{Name: "Inventarios", Classification: model.ClassAsset},
		{Name: "Equipo de Transporte", Classification: model.ClassAsset},
		{Name: "Mobiliario y Equipo", Classification: model.ClassAsset},
		{Name: "Edificio", Classification: model.ClassAsset},
		{Name: "Terrenos", Classification: model.ClassAsset},
		{Name: "Proveedores", Classification: model.ClassLiability},
		{Name: "Documentos por Pagar", Classification: model.ClassLiability},
		{Name: "Acreedores Diversos", Classification: model.ClassLiability},
		{Name: "Hipotecas por Pagar", Classification: model.ClassLiability},
		{Name: "Capital Social", Classification: model.ClassCapital},
		{Name: "Utilidad del Ejercicio", Classification: model.ClassCapital},
		{Name: "Reserva Legal", Classification: model.ClassCapital},
	}
}

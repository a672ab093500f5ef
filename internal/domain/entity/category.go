package entity

import "time"

// Category representa uma categoria de itens (metadado organizacional, sem efeito no estoque).
type Category struct {
	ID        string
	Name      string
	Sector    string // bar, cozinha
	Icon      string // nome do ícone no frontend, vazio se não informado
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package readmodel mantém o modelo de leitura local dos itens: uma cópia em
// memória da coleção, atualizada otimisticamente a cada escrita confirmada e
// invalidável para forçar releitura do banco. O cache é um colaborador
// explícito injetado nos casos de uso, não estado global.
package readmodel

import (
	"sort"
	"strings"
	"sync"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// ItemCache cache de leitura por setor. Um Snapshot só é servido para setores
// já preenchidos por Fill; escritas aplicam o registro exato devolvido pelo
// backend (patch otimista) e Invalidate descarta tudo.
type ItemCache struct {
	mu     sync.RWMutex
	items  map[string]*entity.InventoryItem
	loaded map[string]bool // setor -> lista completa carregada ("" = todos)
}

// NewItemCache constrói o cache vazio.
func NewItemCache() *ItemCache {
	return &ItemCache{
		items:  make(map[string]*entity.InventoryItem),
		loaded: make(map[string]bool),
	}
}

// Snapshot devolve uma cópia da lista do setor (ou de todos, com setor vazio),
// ordenada por nome. ok=false indica cache frio: o chamador deve buscar no
// repositório e preencher com Fill.
func (c *ItemCache) Snapshot(sector string) (items []*entity.InventoryItem, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.loaded[sector] && !c.loaded[""] {
		return nil, false
	}
	for _, it := range c.items {
		if sector != "" && it.Sector != sector {
			continue
		}
		cp := *it
		items = append(items, &cp)
	}
	sort.Slice(items, func(a, b int) bool {
		return strings.ToLower(items[a].Name) < strings.ToLower(items[b].Name)
	})
	return items, true
}

// Fill preenche o cache com a lista completa do setor vinda do repositório.
func (c *ItemCache) Fill(sector string, items []*entity.InventoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Remove o que pertencia ao setor antes de repovoar
	for id, it := range c.items {
		if sector == "" || it.Sector == sector {
			delete(c.items, id)
		}
	}
	for _, it := range items {
		cp := *it
		c.items[it.ID] = &cp
	}
	c.loaded[sector] = true
}

// Upsert aplica otimisticamente o registro devolvido por uma escrita bem
// sucedida (criação, edição ou movimento aplicado/cancelado).
func (c *ItemCache) Upsert(item *entity.InventoryItem) {
	if item == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *item
	c.items[item.ID] = &cp
}

// Remove descarta um item excluído.
func (c *ItemCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
}

// Invalidate descarta todo o conteúdo, forçando releitura do banco no próximo
// Snapshot. Usado quando o patch otimista pode estar incompleto.
func (c *ItemCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entity.InventoryItem)
	c.loaded = make(map[string]bool)
}

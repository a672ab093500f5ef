package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// Apply calcula o resultado de aplicar um movimento sobre a quantidade atual.
// Devolve a nova quantidade e a magnitude normalizada do movimento.
//
// Regras:
//   - magnitude normalizada deve ser > 0, senão ErrInvalidQuantity;
//   - entrada soma, saída subtrai;
//   - saída não pode deixar o estoque negativo (ErrInsufficientStock);
//     zerar o estoque é permitido (fronteira de sucesso é >= 0).
func Apply(currentRaw any, movementType string, quantityRaw any) (newQuantity, quantity decimal.Decimal, err error) {
	quantity = NormalizeDefault(quantityRaw)
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInvalidQuantity
	}

	current := NormalizeDefault(currentRaw)
	switch movementType {
	case entity.MovementTypeEntrada:
		newQuantity = current.Add(quantity)
	case entity.MovementTypeSaida:
		newQuantity = current.Sub(quantity)
	default:
		return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
	}

	if newQuantity.LessThan(decimal.Zero) {
		return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
	}
	return newQuantity, quantity, nil
}

// Reverse calcula o resultado de desfazer um movimento já aplicado: o delta é
// o inverso do original (entrada subtrai, saída devolve). A reversão também
// respeita a fronteira >= 0 — pode falhar legitimamente se outros movimentos
// posteriores já consumiram o estoque (ErrWouldGoNegative).
func Reverse(currentRaw any, movementType string, quantityRaw any) (decimal.Decimal, error) {
	quantity := NormalizeDefault(quantityRaw)
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}

	current := NormalizeDefault(currentRaw)
	var newQuantity decimal.Decimal
	switch movementType {
	case entity.MovementTypeEntrada:
		newQuantity = current.Sub(quantity)
	case entity.MovementTypeSaida:
		newQuantity = current.Add(quantity)
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}

	if newQuantity.LessThan(decimal.Zero) {
		return decimal.Zero, domain.ErrWouldGoNegative
	}
	return newQuantity, nil
}

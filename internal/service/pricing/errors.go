package pricing

import "errors"

var (
	// ErrInvalidInterval возвращается при некорректном интервале бронирования
	ErrInvalidInterval = errors.New("pricing: invalid booking interval")

	// ErrInvalidTaxRate возвращается при отрицательной налоговой ставке
	ErrInvalidTaxRate = errors.New("pricing: tax rate must not be negative")

	// ErrInvalidLineItem возвращается при некорректной позиции (отрицательная цена или количество)
	ErrInvalidLineItem = errors.New("pricing: invalid line item")

	// ErrInvalidDiscount возвращается при некорректной скидке
	ErrInvalidDiscount = errors.New("pricing: invalid discount")
)

package service

import (
	apperrors "ticket-registry/pkg/app_errors"
)

// PriceService 獨立的價格檢查，與票券狀態完全無關、無副作用
type PriceService interface {
	ValidatePrice(amount float64) error
}

type PriceServiceImpl struct {
	minPrice float64
}

func NewPriceService(minPrice float64) PriceService {
	return &PriceServiceImpl{minPrice: minPrice}
}

func (s *PriceServiceImpl) ValidatePrice(amount float64) error {
	if amount < s.minPrice {
		return apperrors.ErrPriceTooLow
	}
	return nil
}

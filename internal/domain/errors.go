package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindBusinessRule
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindInvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Error is a caller-facing failure. Message is end-user copy and safe to display.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrAddressNotFound  = &Error{Kind: KindNotFound, Code: "address_not_found", Message: "收货地址不存在"}
	ErrProductNotFound  = &Error{Kind: KindNotFound, Code: "product_not_found", Message: "商品不存在"}
	ErrVariantNotFound  = &Error{Kind: KindNotFound, Code: "variant_not_found", Message: "商品规格不存在"}
	ErrOrderNotFound    = &Error{Kind: KindNotFound, Code: "order_not_found", Message: "订单不存在"}
	ErrCartItemNotFound = &Error{Kind: KindNotFound, Code: "cart_item_not_found", Message: "购物车商品不存在"}

	ErrInsufficientStock    = &Error{Kind: KindBusinessRule, Code: "insufficient_stock", Message: "商品库存不足"}
	ErrInvalidTransition    = &Error{Kind: KindBusinessRule, Code: "invalid_transition", Message: "订单状态无法变更"}
	ErrCancelNotAllowed     = &Error{Kind: KindBusinessRule, Code: "cancel_not_allowed", Message: "订单不存在或无法取消"}
	ErrStatusConflict       = &Error{Kind: KindBusinessRule, Code: "status_conflict", Message: "订单状态已被修改，请刷新后重试"}
	ErrBelowMinimumQuantity = &Error{Kind: KindBusinessRule, Code: "below_minimum_quantity", Message: "未达到最低购买数量"}
	ErrProductReferenced    = &Error{Kind: KindBusinessRule, Code: "product_referenced", Message: "商品已被订单或购物车引用，无法删除"}

	ErrInvalidInput = &Error{Kind: KindInvalidInput, Code: "invalid_input", Message: "请求参数错误"}
)

// StockError reports which product line ran out of stock.
type StockError struct {
	ProductTitle string
	VariantName  string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("商品库存不足: %s - %s", e.ProductTitle, e.VariantName)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// MinimumQuantityError reports a line below the product's minimum purchase amount.
type MinimumQuantityError struct {
	ProductTitle string
	Minimum      int
}

func (e *MinimumQuantityError) Error() string {
	return fmt.Sprintf("未达到最低购买数量: %s 至少购买 %d 件", e.ProductTitle, e.Minimum)
}

func (e *MinimumQuantityError) Unwrap() error {
	return ErrBelowMinimumQuantity
}

type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("订单状态无法从 %s 变更为 %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// LineError wraps the failure of one checkout line. Index is zero-based in request order.
type LineError struct {
	Index int
	Err   error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line[%d]: %s", e.Index, e.Err.Error())
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// InvalidInputError carries a validation message for a malformed request.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("请求参数错误: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// InvalidInput reports a malformed request field.
func InvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// UserMessage returns end-user copy for err, never internal detail.
// ok is false when err is not a caller-facing failure.
func UserMessage(err error) (msg string, kind *Error, ok bool) {
	var target *Error
	if !errors.As(err, &target) {
		return "", nil, false
	}

	var (
		stockErr      *StockError
		minErr        *MinimumQuantityError
		transitionErr *TransitionError
		inputErr      *InvalidInputError
	)

	switch {
	case errors.As(err, &stockErr):
		return stockErr.Error(), target, true
	case errors.As(err, &minErr):
		return minErr.Error(), target, true
	case errors.As(err, &transitionErr):
		return transitionErr.Error(), target, true
	case errors.As(err, &inputErr):
		return inputErr.Error(), target, true
	}

	return target.Message, target, true
}

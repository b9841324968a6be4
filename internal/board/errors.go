package board

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion")
	ErrPromotionPending = errors.New("promotion pending")
	ErrInvalidSquare    = errors.New("invalid square")
	ErrInvalidFEN       = errors.New("invalid FEN")
	ErrInvalidPosition  = errors.New("invalid position")
)

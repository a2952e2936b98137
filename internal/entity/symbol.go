package entity

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Symbol is a player's placement marker. The zero value is the empty cell.
type Symbol rune

const (
	EmptyCell Symbol = 0

	PlayerX Symbol = 'X'
	PlayerO Symbol = 'O'
)

// IsBlank reports whether the symbol cannot be used as a player marker.
func (that Symbol) IsBlank() bool {
	return that == EmptyCell || unicode.IsSpace(rune(that)) || !unicode.IsPrint(rune(that))
}

func (that Symbol) String() string {
	if that == EmptyCell {
		return ""
	}

	return string(rune(that))
}

// ParseSymbol - converts a one-character string (e.g. from config) into a Symbol.
func ParseSymbol(value string) (Symbol, error) {
	if utf8.RuneCountInString(value) != 1 {
		if value == "" {
			return EmptyCell, apperror.ErrBlankSymbol
		}

		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, value)
	}

	r, _ := utf8.DecodeRuneInString(value)

	symbol := Symbol(r)
	if symbol.IsBlank() {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrBlankSymbol, value)
	}

	return symbol, nil
}

// Move is a pair of grid coordinates.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

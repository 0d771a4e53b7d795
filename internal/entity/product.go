package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Column limits of the products_info table.
const (
	MaxNameLength        = 20
	MaxDescriptionLength = 30
	MaxCategoryLength    = 10
)

var ErrInvalidProduct = errors.New("invalid product")

// Column is a set of products_info columns.
type Column uint8

const (
	ColumnID Column = 1 << iota
	ColumnName
	ColumnPrice
	ColumnDescription
	ColumnCategory
)

type Product struct {
	ID          int
	Name        string
	Price       int
	Description string
	Category    string

	// Nulls marks the columns stored as NULL. Their Go fields hold zero values.
	Nulls Column
}

func (p *Product) IsNull(c Column) bool {
	return p.Nulls&c != 0
}

// Validate checks the text fields against the column limits.
func (p *Product) Validate() error {
	if n := utf8.RuneCountInString(p.Name); n > MaxNameLength {
		return fmt.Errorf("%w: name has %d characters, max %d", ErrInvalidProduct, n, MaxNameLength)
	}
	if n := utf8.RuneCountInString(p.Description); n > MaxDescriptionLength {
		return fmt.Errorf("%w: description has %d characters, max %d", ErrInvalidProduct, n, MaxDescriptionLength)
	}
	if n := utf8.RuneCountInString(p.Category); n > MaxCategoryLength {
		return fmt.Errorf("%w: category has %d characters, max %d", ErrInvalidProduct, n, MaxCategoryLength)
	}
	return nil
}

// Values returns the column values in table order, nil for NULL columns.
func (p *Product) Values() []interface{} {
	return []interface{}{
		p.nullable(ColumnID, p.ID),
		p.nullable(ColumnName, p.Name),
		p.nullable(ColumnPrice, p.Price),
		p.nullable(ColumnDescription, p.Description),
		p.nullable(ColumnCategory, p.Category),
	}
}

func (p *Product) nullable(c Column, v interface{}) interface{} {
	if p.IsNull(c) {
		return nil
	}
	return v
}

// Field renders one column the way a listing prints it: bare text, or None for NULL.
func (p *Product) Field(c Column) string {
	if p.IsNull(c) {
		return "None"
	}
	switch c {
	case ColumnID:
		return strconv.Itoa(p.ID)
	case ColumnName:
		return p.Name
	case ColumnPrice:
		return strconv.Itoa(p.Price)
	case ColumnDescription:
		return p.Description
	case ColumnCategory:
		return p.Category
	}
	return ""
}

// String renders the product as a row tuple, e.g. (1, 'Pen', 10, 'Blue pen', 'Stationery').
// Text is quoted and escaped the same way the original console did; NULL is None.
func (p *Product) String() string {
	parts := []string{
		p.Field(ColumnID),
		p.quoted(ColumnName, p.Name),
		p.Field(ColumnPrice),
		p.quoted(ColumnDescription, p.Description),
		p.quoted(ColumnCategory, p.Category),
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *Product) quoted(c Column, s string) string {
	if p.IsNull(c) {
		return "None"
	}
	return reprString(s)
}

// reprString quotes s with single quotes, or double quotes when s holds a
// single quote and no double quote. Backslashes, the chosen quote and
// non-printable characters are escaped.
func reprString(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteRune('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// productJSON is the wire form; a nil field is a NULL column.
type productJSON struct {
	ID          *int    `json:"product_id"`
	Name        *string `json:"product_name"`
	Price       *int    `json:"product_price"`
	Description *string `json:"product_desc"`
	Category    *string `json:"product_category"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	var w productJSON
	if !p.IsNull(ColumnID) {
		w.ID = &p.ID
	}
	if !p.IsNull(ColumnName) {
		w.Name = &p.Name
	}
	if !p.IsNull(ColumnPrice) {
		w.Price = &p.Price
	}
	if !p.IsNull(ColumnDescription) {
		w.Description = &p.Description
	}
	if !p.IsNull(ColumnCategory) {
		w.Category = &p.Category
	}
	return json.Marshal(w)
}

// UnmarshalJSON treats null and missing fields as NULL columns.
func (p *Product) UnmarshalJSON(data []byte) error {
	var w productJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Product{}
	if w.ID != nil {
		p.ID = *w.ID
	} else {
		p.Nulls |= ColumnID
	}
	if w.Name != nil {
		p.Name = *w.Name
	} else {
		p.Nulls |= ColumnName
	}
	if w.Price != nil {
		p.Price = *w.Price
	} else {
		p.Nulls |= ColumnPrice
	}
	if w.Description != nil {
		p.Description = *w.Description
	} else {
		p.Nulls |= ColumnDescription
	}
	if w.Category != nil {
		p.Category = *w.Category
	} else {
		p.Nulls |= ColumnCategory
	}
	return nil
}

/*
Schema MySQL for products_info table:
CREATE TABLE products_info (
  productId int(10),
  productName varchar(20),
  productPrice int,
  productDesc varchar(30),
  productCategory varchar(10)
);
*/

package entity

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name        string
		product     Product
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid_product",
			product: Product{ID: 1, Name: "Pen", Price: 10, Description: "Blue pen", Category: "Stationery"},
		},
		{
			name:    "empty_fields_allowed",
			product: Product{ID: 2},
		},
		{
			name:    "fields_at_limit",
			product: Product{Name: strings.Repeat("n", 20), Description: strings.Repeat("d", 30), Category: strings.Repeat("c", 10)},
		},
		{
			name:    "multibyte_counts_characters",
			product: Product{Name: strings.Repeat("é", 20)},
		},
		{
			name:        "name_too_long",
			product:     Product{Name: strings.Repeat("n", 21)},
			wantErr:     true,
			errContains: "name has 21 characters",
		},
		{
			name:        "description_too_long",
			product:     Product{Description: strings.Repeat("d", 31)},
			wantErr:     true,
			errContains: "description has 31 characters",
		},
		{
			name:        "category_too_long",
			product:     Product{Category: "Electronics"},
			wantErr:     true,
			errContains: "category has 11 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidProduct)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProductString(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    string
	}{
		{
			name:    "plain_row",
			product: Product{ID: 1, Name: "Pen", Price: 10, Description: "Blue pen", Category: "Stationery"},
			want:    "(1, 'Pen', 10, 'Blue pen', 'Stationery')",
		},
		{
			name:    "single_quote_switches_to_double",
			product: Product{ID: 2, Name: "O'Reilly", Price: 3, Description: `say "hi"`, Category: "Books"},
			want:    `(2, "O'Reilly", 3, 'say "hi"', 'Books')`,
		},
		{
			name:    "both_quotes_escape_single",
			product: Product{ID: 3, Name: `it's "x"`},
			want:    `(3, 'it\'s "x"', 0, '', '')`,
		},
		{
			name:    "backslash_and_control_characters",
			product: Product{ID: 4, Name: `a\b`, Description: "tab\there\n", Category: "\x01\u00a0"},
			want:    `(4, 'a\\b', 0, 'tab\there\n', '\x01\xa0')`,
		},
		{
			name:    "null_columns_render_none",
			product: Product{ID: 3, Nulls: ColumnName | ColumnPrice | ColumnDescription | ColumnCategory},
			want:    "(3, None, None, None, None)",
		},
		{
			name:    "null_id",
			product: Product{Name: "Orphan", Price: 0, Nulls: ColumnID},
			want:    "(None, 'Orphan', 0, '', '')",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.String())
		})
	}
}

func TestProductField(t *testing.T) {
	p := &Product{ID: 5, Name: "O'Reilly", Price: 0, Nulls: ColumnDescription}
	assert.Equal(t, "5", p.Field(ColumnID))
	assert.Equal(t, "O'Reilly", p.Field(ColumnName))
	assert.Equal(t, "0", p.Field(ColumnPrice))
	assert.Equal(t, "None", p.Field(ColumnDescription))
	assert.Equal(t, "", p.Field(ColumnCategory))
}

func TestProductValues(t *testing.T) {
	p := &Product{ID: 1, Name: "Pen", Price: 10, Nulls: ColumnDescription | ColumnCategory}
	assert.Equal(t, []interface{}{1, "Pen", 10, nil, nil}, p.Values())
}

func TestProductJSONKeepsNulls(t *testing.T) {
	p := Product{ID: 3, Name: "Orphan", Nulls: ColumnPrice | ColumnDescription | ColumnCategory}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"product_id":3,"product_name":"Orphan","product_price":null,"product_desc":null,"product_category":null}`, string(data))

	var got Product
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, p, got)
}

func TestProductJSONMissingFieldsAreNull(t *testing.T) {
	var got Product
	require.NoError(t, json.Unmarshal([]byte(`{"product_id":1,"product_price":0}`), &got))
	assert.Equal(t, Product{ID: 1, Nulls: ColumnName | ColumnDescription | ColumnCategory}, got)
	assert.False(t, got.IsNull(ColumnPrice))
}

package entity

import (
	"encoding/json"
	"fmt"
)

// Atributos enumerados del catálogo. Cada tipo es un conjunto cerrado; el valor vacío
// significa "ausente" y nunca es un valor válido.

// ProductType tipo de prenda.
type ProductType string

const (
	ProductTypeShirt  ProductType = "Shirt"
	ProductTypePants  ProductType = "Pants"
	ProductTypeDress  ProductType = "Dress"
	ProductTypeJacket ProductType = "Jacket"
	ProductTypeSkirt  ProductType = "Skirt"
)

// Color de una variante.
type Color string

const (
	ColorRed    Color = "Red"
	ColorBlue   Color = "Blue"
	ColorBlack  Color = "Black"
	ColorWhite  Color = "White"
	ColorGreen  Color = "Green"
	ColorYellow Color = "Yellow"
	ColorGray   Color = "Gray"
	ColorPink   Color = "Pink"
)

// Size talle de una variante.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Fabric tela de una variante.
type Fabric string

const (
	FabricCotton    Fabric = "Cotton"
	FabricPolyester Fabric = "Polyester"
	FabricLinen     Fabric = "Linen"
	FabricDenim     Fabric = "Denim"
	FabricWool      Fabric = "Wool"
	FabricSilk      Fabric = "Silk"
)

// NeckType tipo de cuello (opcional, solo algunas prendas).
type NeckType string

const (
	NeckTypeRound      NeckType = "Round"
	NeckTypeVNeck      NeckType = "VNeck"
	NeckTypePolo       NeckType = "Polo"
	NeckTypeTurtleneck NeckType = "Turtleneck"
)

// Fit calce (opcional).
type Fit string

const (
	FitSlim     Fit = "Slim"
	FitRegular  Fit = "Regular"
	FitOversize Fit = "Oversize"
)

// IsValid reporta si t pertenece al conjunto.
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeShirt, ProductTypePants, ProductTypeDress, ProductTypeJacket, ProductTypeSkirt:
		return true
	}
	return false
}

func (c Color) IsValid() bool {
	switch c {
	case ColorRed, ColorBlue, ColorBlack, ColorWhite, ColorGreen, ColorYellow, ColorGray, ColorPink:
		return true
	}
	return false
}

func (s Size) IsValid() bool {
	switch s {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

func (f Fabric) IsValid() bool {
	switch f {
	case FabricCotton, FabricPolyester, FabricLinen, FabricDenim, FabricWool, FabricSilk:
		return true
	}
	return false
}

func (n NeckType) IsValid() bool {
	switch n {
	case NeckTypeRound, NeckTypeVNeck, NeckTypePolo, NeckTypeTurtleneck:
		return true
	}
	return false
}

func (f Fit) IsValid() bool {
	switch f {
	case FitSlim, FitRegular, FitOversize:
		return true
	}
	return false
}

func (t *ProductType) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, t, "product type") }
func (c *Color) UnmarshalJSON(b []byte) error       { return unmarshalEnum(b, c, "color") }
func (s *Size) UnmarshalJSON(b []byte) error        { return unmarshalEnum(b, s, "size") }
func (f *Fabric) UnmarshalJSON(b []byte) error      { return unmarshalEnum(b, f, "fabric") }
func (n *NeckType) UnmarshalJSON(b []byte) error    { return unmarshalEnum(b, n, "neck type") }
func (f *Fit) UnmarshalJSON(b []byte) error         { return unmarshalEnum(b, f, "fit") }

type enum interface {
	~string
	IsValid() bool
}

// unmarshalEnum rechaza cualquier valor fuera del conjunto al decodificar JSON.
func unmarshalEnum[T enum](b []byte, dst *T, name string) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	v := T(s)
	if !v.IsValid() {
		return fmt.Errorf("%s inválido: %q", name, s)
	}
	*dst = v
	return nil
}

// Parse convierte un texto persistido al enum, validándolo.
func Parse[T enum](s string) (T, error) {
	v := T(s)
	if !v.IsValid() {
		return v, fmt.Errorf("valor inválido: %q", s)
	}
	return v, nil
}

package curve

import "fmt"

// CurveType tags the pricing curve variant of a pool.
type CurveType uint8

const (
	ConstantProduct CurveType = 1
	ConstantPrice   CurveType = 2
	Offset          CurveType = 3
	Stable          CurveType = 4
)

func (t CurveType) String() string {
	switch t {
	case ConstantProduct:
		return "constant_product"
	case ConstantPrice:
		return "constant_price"
	case Offset:
		return "offset"
	case Stable:
		return "stable"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// CurveParams is the tagged union of curve parameters; only the fields of the
// selected variant are read.
type CurveParams struct {
	Type CurveType `mapstructure:"type"`

	// TokenBPrice is the constant price curve's fixed rate, in token A per
	// token B.
	TokenBPrice uint64 `mapstructure:"token_b_price"`

	// TokenBOffset is the offset curve's additive token B offset.
	TokenBOffset uint64 `mapstructure:"token_b_offset"`

	// Amp and the decimal counts parameterize the stable curve.
	Amp            uint64 `mapstructure:"amp"`
	TokenADecimals uint8  `mapstructure:"token_a_decimals"`
	TokenBDecimals uint8  `mapstructure:"token_b_decimals"`
}

// NewSwapCurve builds the calculator for the selected variant. The variant set
// is closed, so a plain switch carries the dispatch.
func NewSwapCurve(params CurveParams) (SwapCurve, error) {
	var calculator Calculator
	switch params.Type {
	case ConstantProduct:
		calculator = ConstantProductCurve{}
	case ConstantPrice:
		calculator = ConstantPriceCurve{TokenBPrice: params.TokenBPrice}
	case Offset:
		calculator = OffsetCurve{TokenBOffset: params.TokenBOffset}
	case Stable:
		stable, err := NewStableCurve(params.Amp, params.TokenADecimals, params.TokenBDecimals)
		if err != nil {
			return SwapCurve{}, err
		}
		calculator = stable
	default:
		return SwapCurve{}, ErrInvalidCurve.Wrapf("unknown curve type %d", params.Type)
	}
	if err := calculator.Validate(); err != nil {
		return SwapCurve{}, err
	}
	return SwapCurve{CurveType: params.Type, Calculator: calculator}, nil
}

package symbology

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/twooffive"

	"github.com/matzehuels/barsvg/pkg/errors"
	"github.com/matzehuels/barsvg/pkg/pattern"
)

var (
	digits7or8    = regexp.MustCompile(`^[0-9]{7,8}$`)
	digits11or12  = regexp.MustCompile(`^[0-9]{11,12}$`)
	digits12or13  = regexp.MustCompile(`^[0-9]{12,13}$`)
	digits13or14  = regexp.MustCompile(`^[0-9]{13,14}$`)
	digitsEven    = regexp.MustCompile(`^([0-9]{2})+$`)
	codabarNoStop = regexp.MustCompile(`^[0-9\-$:./+]+$`)
)

// linearDef describes a built-in linear symbology.
type linearDef struct {
	id        ID
	normalize func(string) (string, error)
	encode    func(string) (barcode.Barcode, error)
}

func (d linearDef) factory() Factory {
	return func(opts Options) Encoder {
		return &linearEncoder{def: d, opts: opts}
	}
}

var linearDefs = []linearDef{
	{
		id: Code128,
		encode: func(v string) (barcode.Barcode, error) {
			bc, err := code128.Encode(v)
			return bc, err
		},
	},
	{
		id:        Code39,
		normalize: upper,
		encode: func(v string) (barcode.Barcode, error) {
			bc, err := code39.Encode(v, false, false)
			return bc, err
		},
	},
	{
		id: Code93,
		encode: func(v string) (barcode.Barcode, error) {
			return code93.Encode(v, true, false)
		},
	},
	{
		id:        EAN13,
		normalize: match(digits12or13, "EAN13 requires 12 or 13 digits"),
		encode:    encodeEAN,
	},
	{
		id:        EAN8,
		normalize: match(digits7or8, "EAN8 requires 7 or 8 digits"),
		encode:    encodeEAN,
	},
	{
		// UPC-A is EAN-13 with a leading zero.
		id: UPC,
		normalize: func(v string) (string, error) {
			if !digits11or12.MatchString(v) {
				return "", fmt.Errorf("UPC requires 11 or 12 digits")
			}
			return "0" + v, nil
		},
		encode: encodeEAN,
	},
	{
		id:        ITF,
		normalize: match(digitsEven, "ITF requires an even number of digits"),
		encode: func(v string) (barcode.Barcode, error) {
			return twooffive.Encode(v, true)
		},
	},
	{
		id:        ITF14,
		normalize: normalizeITF14,
		encode: func(v string) (barcode.Barcode, error) {
			return twooffive.Encode(v, true)
		},
	},
	{
		id:        Codabar,
		normalize: normalizeCodabar,
		encode:    codabar.Encode,
	},
}

func encodeEAN(v string) (barcode.Barcode, error) {
	bc, err := ean.Encode(v)
	return bc, err
}

func upper(v string) (string, error) {
	return strings.ToUpper(v), nil
}

func match(re *regexp.Regexp, msg string) func(string) (string, error) {
	return func(v string) (string, error) {
		if !re.MatchString(v) {
			return "", fmt.Errorf("%s", msg)
		}
		return v, nil
	}
}

func normalizeITF14(v string) (string, error) {
	if !digits13or14.MatchString(v) {
		return "", fmt.Errorf("ITF14 requires 13 or 14 digits")
	}
	withSum, err := twooffive.AddCheckSum(v[:13])
	if err != nil {
		return "", err
	}
	if len(v) == 14 && withSum != v {
		return "", fmt.Errorf("ITF14 check digit mismatch: want %c", withSum[13])
	}
	return withSum, nil
}

// normalizeCodabar wraps values without start/stop characters in A...A.
func normalizeCodabar(v string) (string, error) {
	v = strings.ToUpper(v)
	if codabarNoStop.MatchString(v) {
		return "A" + v + "A", nil
	}
	return v, nil
}

// linearEncoder is an Encoder backed by a boombuler/barcode 1D encoder.
type linearEncoder struct {
	def  linearDef
	opts Options
}

func (e *linearEncoder) ID() ID { return e.def.id }

func (e *linearEncoder) Valid(value string) bool {
	return e.Validate(value) == nil
}

func (e *linearEncoder) Validate(value string) error {
	_, err := e.encode(value)
	return err
}

func (e *linearEncoder) Encode(value string) (pattern.Pattern, error) {
	bc, err := e.encode(value)
	if err != nil {
		return "", err
	}
	return modules(bc)
}

func (e *linearEncoder) encode(value string) (barcode.Barcode, error) {
	if value == "" {
		return nil, fmt.Errorf("empty value")
	}
	if e.def.normalize != nil {
		var err error
		if value, err = e.def.normalize(value); err != nil {
			return nil, err
		}
	}
	return e.def.encode(value)
}

// modules reads the module pattern out of a 1D barcode image. Linear codes
// from boombuler/barcode are one pixel high with one pixel per module.
func modules(bc barcode.Barcode) (pattern.Pattern, error) {
	if md := bc.Metadata(); md.Dimensions != 1 {
		return "", errors.New(errors.ErrCodeUnsupported, "%s is not a linear barcode", md.CodeKind)
	}
	b := bc.Bounds()
	if b.Dx() <= 0 {
		return "", errors.New(errors.ErrCodeInternal, "encoder produced no modules")
	}
	bits := make([]bool, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		g := color.GrayModel.Convert(bc.At(x, b.Min.Y)).(color.Gray)
		bits[x-b.Min.X] = g.Y < 0x80
	}
	return pattern.FromBits(bits), nil
}

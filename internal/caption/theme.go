package caption

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// horizontal anchor for rendered text
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Theme is a complete styling and layout preset for captions.
// Position fields are percentages of the video dimensions.
type Theme struct {
	Name string `json:"name" yaml:"name" validate:"required"`

	FontFamily string `json:"font_family" yaml:"font_family" validate:"required"`
	FontSize   int    `json:"font_size" yaml:"font_size" validate:"min=10,max=200"`
	FontWeight int    `json:"font_weight" yaml:"font_weight"`

	TextColor       string `json:"text_color" yaml:"text_color" validate:"caption_color"`
	HighlightColor  string `json:"highlight_color" yaml:"highlight_color" validate:"caption_color"`
	OutlineColor    string `json:"outline_color" yaml:"outline_color" validate:"caption_color"`
	ShadowColor     string `json:"shadow_color" yaml:"shadow_color" validate:"caption_color"`
	BackgroundColor string `json:"background_color,omitempty" yaml:"background_color,omitempty" validate:"omitempty,caption_color"`

	PositionX int       `json:"position_x" yaml:"position_x" validate:"min=0,max=100"`
	PositionY int       `json:"position_y" yaml:"position_y" validate:"min=0,max=100"`
	Alignment Alignment `json:"alignment" yaml:"alignment" validate:"oneof=left center right"`

	OutlineWidth int `json:"outline_width" yaml:"outline_width" validate:"min=0"`
	ShadowOffset int `json:"shadow_offset" yaml:"shadow_offset" validate:"min=0"`
	ShadowBlur   int `json:"shadow_blur" yaml:"shadow_blur" validate:"min=0"`

	AnimationStyle AnimationStyle `json:"animation_style" yaml:"animation_style" validate:"oneof=none karaoke bounce pop glow wave typewriter"`
	AnimationSpeed float64        `json:"animation_speed" yaml:"animation_speed" validate:"gt=0"`

	WordsPerLine    int `json:"words_per_line" yaml:"words_per_line" validate:"min=1,max=10"`
	MaxCharsPerLine int `json:"max_chars_per_line" yaml:"max_chars_per_line" validate:"gt=0"`
	LineSpacing     int `json:"line_spacing" yaml:"line_spacing"`
	LetterSpacing   int `json:"letter_spacing" yaml:"letter_spacing"`

	Uppercase bool `json:"uppercase" yaml:"uppercase"`
}

// DefaultThemeName is the preset used when no theme is requested.
const DefaultThemeName = "hormozi"

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// only #RGB and #RRGGBB; validator's builtin hexcolor also
	// admits 4 and 8 digit forms, which renderers reject here
	colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

func themeValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("caption_color", func(fl validator.FieldLevel) bool {
			return colorPattern.MatchString(fl.Field().String())
		})

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if tag == "" || tag == "-" {
				return field.Name
			}
			return tag
		})

		validateInst = v
	})

	return validateInst
}

// ValidateTheme checks every field constraint and returns all
// violations. Out-of-range values are rejected, never clamped.
func ValidateTheme(t Theme) []string {
	err := themeValidator().Struct(t)
	if err == nil {
		return nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	issues := make([]string, 0, len(ves))
	for _, fe := range ves {
		issues = append(issues, themeIssue(fe))
	}
	return issues
}

func themeIssue(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("theme %s: must not be empty", field)
	case "caption_color":
		return fmt.Sprintf("theme %s: %q is not a #RGB or #RRGGBB color", field, fe.Value())
	case "min":
		return fmt.Sprintf("theme %s: %v is below the minimum of %s", field, fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("theme %s: %v is above the maximum of %s", field, fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("theme %s: %v must be greater than %s", field, fe.Value(), fe.Param())
	case "oneof":
		return fmt.Sprintf("theme %s: %q is not one of: %s", field, fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("theme %s: failed %s constraint", field, fe.Tag())
	}
}

// base values shared by every preset
func defaultTheme(name string) Theme {
	return Theme{
		Name:            name,
		FontFamily:      "Montserrat",
		FontSize:        80,
		FontWeight:      800,
		TextColor:       "#FFFFFF",
		HighlightColor:  "#FFFF00",
		OutlineColor:    "#000000",
		ShadowColor:     "#000000",
		PositionX:       50,
		PositionY:       70,
		Alignment:       AlignCenter,
		OutlineWidth:    4,
		ShadowOffset:    2,
		AnimationStyle:  AnimationKaraoke,
		AnimationSpeed:  1.0,
		WordsPerLine:    3,
		MaxCharsPerLine: 30,
		LineSpacing:     10,
	}
}

// catalog of named presets, built once at process start and never
// mutated afterward; GetTheme hands out copies
var presets = buildPresets()

func buildPresets() map[string]Theme {
	hormozi := defaultTheme("Hormozi")
	hormozi.ShadowOffset = 3
	hormozi.Uppercase = true

	beast := defaultTheme("Beast")
	beast.FontFamily = "Impact"
	beast.FontSize = 90
	beast.FontWeight = 700
	beast.HighlightColor = "#FF0000"
	beast.OutlineWidth = 6
	beast.ShadowOffset = 4
	beast.PositionY = 80
	beast.AnimationStyle = AnimationPop
	beast.WordsPerLine = 2
	beast.Uppercase = true

	clean := defaultTheme("Clean")
	clean.FontFamily = "Inter"
	clean.FontSize = 60
	clean.FontWeight = 600
	clean.HighlightColor = "#00BFFF"
	clean.OutlineWidth = 2
	clean.ShadowOffset = 1
	clean.PositionY = 85
	clean.AnimationStyle = AnimationNone
	clean.WordsPerLine = 5
	clean.MaxCharsPerLine = 40

	neon := defaultTheme("Neon")
	neon.FontFamily = "Poppins"
	neon.FontSize = 70
	neon.FontWeight = 700
	neon.TextColor = "#00FF00"
	neon.HighlightColor = "#FF00FF"
	neon.OutlineWidth = 3
	neon.ShadowBlur = 10
	neon.PositionY = 75
	neon.AnimationStyle = AnimationGlow

	minimal := defaultTheme("Minimal")
	minimal.FontFamily = "Helvetica"
	minimal.FontSize = 50
	minimal.FontWeight = 400
	minimal.HighlightColor = "#FFFFFF"
	minimal.OutlineWidth = 1
	minimal.ShadowOffset = 0
	minimal.PositionY = 90
	minimal.AnimationStyle = AnimationNone
	minimal.WordsPerLine = 6
	minimal.MaxCharsPerLine = 50

	bold := defaultTheme("Bold")
	bold.FontFamily = "Arial Black"
	bold.FontSize = 85
	bold.FontWeight = 900
	bold.HighlightColor = "#FFA500"
	bold.OutlineWidth = 5
	bold.ShadowOffset = 4
	bold.AnimationStyle = AnimationBounce
	bold.WordsPerLine = 2
	bold.Uppercase = true

	gradient := defaultTheme("Gradient")
	gradient.FontSize = 75
	gradient.FontWeight = 700
	gradient.TextColor = "#FF6B6B"
	gradient.HighlightColor = "#4ECDC4"
	gradient.OutlineColor = "#2C3E50"
	gradient.OutlineWidth = 3
	gradient.PositionY = 72
	gradient.AnimationStyle = AnimationWave

	sara := defaultTheme("Sara")
	sara.FontFamily = "Poppins"
	sara.FontSize = 65
	sara.FontWeight = 600
	sara.HighlightColor = "#FF69B4"
	sara.OutlineWidth = 3
	sara.PositionY = 75
	sara.WordsPerLine = 4

	return map[string]Theme{
		"hormozi":  hormozi,
		"beast":    beast,
		"clean":    clean,
		"neon":     neon,
		"minimal":  minimal,
		"bold":     bold,
		"gradient": gradient,
		"sara":     sara,
	}
}

// GetTheme returns a copy of the named preset. Lookup is case-insensitive.
func GetTheme(name string) (Theme, error) {
	t, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Theme{}, newValidationError(fmt.Sprintf(
			"unknown theme %q: available themes: %s",
			name, strings.Join(ListThemes(), ", "),
		))
	}
	return t, nil
}

// ListThemes returns the preset names in sorted order.
func ListThemes() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeOverrides is a partial field set applied onto a copied preset.
// Nil fields keep the preset value.
type ThemeOverrides struct {
	FontFamily      *string         `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize        *int            `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontWeight      *int            `json:"font_weight,omitempty" yaml:"font_weight,omitempty"`
	TextColor       *string         `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	HighlightColor  *string         `json:"highlight_color,omitempty" yaml:"highlight_color,omitempty"`
	OutlineColor    *string         `json:"outline_color,omitempty" yaml:"outline_color,omitempty"`
	ShadowColor     *string         `json:"shadow_color,omitempty" yaml:"shadow_color,omitempty"`
	BackgroundColor *string         `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	PositionX       *int            `json:"position_x,omitempty" yaml:"position_x,omitempty"`
	PositionY       *int            `json:"position_y,omitempty" yaml:"position_y,omitempty"`
	Alignment       *Alignment      `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	OutlineWidth    *int            `json:"outline_width,omitempty" yaml:"outline_width,omitempty"`
	ShadowOffset    *int            `json:"shadow_offset,omitempty" yaml:"shadow_offset,omitempty"`
	ShadowBlur      *int            `json:"shadow_blur,omitempty" yaml:"shadow_blur,omitempty"`
	AnimationStyle  *AnimationStyle `json:"animation_style,omitempty" yaml:"animation_style,omitempty"`
	AnimationSpeed  *float64        `json:"animation_speed,omitempty" yaml:"animation_speed,omitempty"`
	WordsPerLine    *int            `json:"words_per_line,omitempty" yaml:"words_per_line,omitempty"`
	MaxCharsPerLine *int            `json:"max_chars_per_line,omitempty" yaml:"max_chars_per_line,omitempty"`
	LineSpacing     *int            `json:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
	LetterSpacing   *int            `json:"letter_spacing,omitempty" yaml:"letter_spacing,omitempty"`
	Uppercase       *bool           `json:"uppercase,omitempty" yaml:"uppercase,omitempty"`
}

// ThemeFromPreset constructs a new Theme from a copied preset with the
// given fields overridden. The preset itself is never touched, so no
// aliasing exists between the catalog and the derived value.
func ThemeFromPreset(base string, o ThemeOverrides) (Theme, error) {
	t, err := GetTheme(base)
	if err != nil {
		return Theme{}, err
	}

	if o.FontFamily != nil {
		t.FontFamily = *o.FontFamily
	}
	if o.FontSize != nil {
		t.FontSize = *o.FontSize
	}
	if o.FontWeight != nil {
		t.FontWeight = *o.FontWeight
	}
	if o.TextColor != nil {
		t.TextColor = *o.TextColor
	}
	if o.HighlightColor != nil {
		t.HighlightColor = *o.HighlightColor
	}
	if o.OutlineColor != nil {
		t.OutlineColor = *o.OutlineColor
	}
	if o.ShadowColor != nil {
		t.ShadowColor = *o.ShadowColor
	}
	if o.BackgroundColor != nil {
		t.BackgroundColor = *o.BackgroundColor
	}
	if o.PositionX != nil {
		t.PositionX = *o.PositionX
	}
	if o.PositionY != nil {
		t.PositionY = *o.PositionY
	}
	if o.Alignment != nil {
		t.Alignment = *o.Alignment
	}
	if o.OutlineWidth != nil {
		t.OutlineWidth = *o.OutlineWidth
	}
	if o.ShadowOffset != nil {
		t.ShadowOffset = *o.ShadowOffset
	}
	if o.ShadowBlur != nil {
		t.ShadowBlur = *o.ShadowBlur
	}
	if o.AnimationStyle != nil {
		t.AnimationStyle = *o.AnimationStyle
	}
	if o.AnimationSpeed != nil {
		t.AnimationSpeed = *o.AnimationSpeed
	}
	if o.WordsPerLine != nil {
		t.WordsPerLine = *o.WordsPerLine
	}
	if o.MaxCharsPerLine != nil {
		t.MaxCharsPerLine = *o.MaxCharsPerLine
	}
	if o.LineSpacing != nil {
		t.LineSpacing = *o.LineSpacing
	}
	if o.LetterSpacing != nil {
		t.LetterSpacing = *o.LetterSpacing
	}
	if o.Uppercase != nil {
		t.Uppercase = *o.Uppercase
	}

	return t, nil
}

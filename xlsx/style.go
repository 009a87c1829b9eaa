package xlsx

// Font holds the font properties of a cell style. The zero value of each
// field means "not set".
type Font struct {
	// Name is the font family name (e.g. "Calibri", "Arial").
	Name string
	// Size is the font size in points; 0 means unset.
	Size float64
	// Bold, Italic, Underline and Strike are the usual emphasis flags.
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	// Color is an RGB hex value (e.g. "#FF0000") or a "theme:N" reference.
	Color string
	// VertAlign is "superscript" or "subscript".
	VertAlign string
}

// Fill holds the pattern fill of a cell style.
type Fill struct {
	// PatternType is e.g. "solid", "gray125"; empty means no pattern.
	PatternType string
	// FgColor and BgColor are RGB hex values or theme references.
	FgColor string
	BgColor string
}

// SolidFill returns a solid fill with the given foreground color.
func SolidFill(color string) Fill {
	return Fill{PatternType: "solid", FgColor: color}
}

// BorderStyle describes one edge of a border. An empty Style means the edge
// is absent.
type BorderStyle struct {
	// Style is e.g. "thin", "medium", "thick", "dashed", "double".
	Style string
	// Color is an RGB hex value.
	Color string
}

// Border holds the edge styles of a cell border.
type Border struct {
	Left     BorderStyle
	Right    BorderStyle
	Top      BorderStyle
	Bottom   BorderStyle
	Diagonal BorderStyle
}

// BorderAll returns a border with the four outer edges set to style.
func BorderAll(style BorderStyle) Border {
	return Border{Left: style, Right: style, Top: style, Bottom: style}
}

// Alignment holds text alignment settings. Stored directly on each cell
// format, not deduplicated.
type Alignment struct {
	// Horizontal is e.g. "left", "center", "right", "fill", "justify".
	Horizontal string
	// Vertical is e.g. "top", "center", "bottom".
	Vertical     string
	WrapText     bool
	TextRotation int
	Indent       uint32
	ShrinkToFit  bool
}

// Protection holds cell protection settings.
type Protection struct {
	Locked bool
	Hidden bool
}

// CellStyle is the user-facing composed style: any subset of font, fill,
// border, alignment, number format and protection. Nil/empty members are
// simply not applied.
type CellStyle struct {
	Font         *Font
	Fill         *Fill
	Border       *Border
	Alignment    *Alignment
	NumberFormat string
	Protection   *Protection
}

// CellXf is one cell-format entry: indices into the font/fill/border/numFmt
// catalogs plus directly-stored alignment and protection, and flags recording
// which components are applied.
type CellXf struct {
	FontID   int
	FillID   int
	BorderID int
	NumFmtID int

	Alignment  *Alignment
	Protection *Protection

	ApplyFont         bool
	ApplyFill         bool
	ApplyBorder       bool
	ApplyNumberFormat bool
	ApplyAlignment    bool
	ApplyProtection   bool
}

func alignmentEqual(a, b *Alignment) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func protectionEqual(a, b *Protection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Equal reports field-wise equality between two cell-format entries.
func (x CellXf) Equal(other CellXf) bool {
	return x.FontID == other.FontID &&
		x.FillID == other.FillID &&
		x.BorderID == other.BorderID &&
		x.NumFmtID == other.NumFmtID &&
		x.ApplyFont == other.ApplyFont &&
		x.ApplyFill == other.ApplyFill &&
		x.ApplyBorder == other.ApplyBorder &&
		x.ApplyNumberFormat == other.ApplyNumberFormat &&
		x.ApplyAlignment == other.ApplyAlignment &&
		x.ApplyProtection == other.ApplyProtection &&
		alignmentEqual(x.Alignment, other.Alignment) &&
		protectionEqual(x.Protection, other.Protection)
}

// NumFmt is one custom number format entry. Built-in IDs 0-163 are fixed by
// the format specification; custom formats start at ID 164.
type NumFmt struct {
	ID   int
	Code string
}

// StyleRegistry owns the four deduplicated style catalogs plus the
// cell-format entries that index into them. Every Workbook owns exactly one.
//
// Deduplication is a linear structural-equality scan. Catalogs are small in
// practice and the encoded part depends on insertion order, so there is no
// hash index.
type StyleRegistry struct {
	Fonts   []Font
	Fills   []Fill
	Borders []Border
	NumFmts []NumFmt
	CellXfs []CellXf
}

// NewStyleRegistry creates a registry holding the mandatory minimum entries:
// one default font, the "none" and "gray125" fills, one empty border and one
// default cell format.
func NewStyleRegistry() *StyleRegistry {
	return &StyleRegistry{
		Fonts:   []Font{{Name: "Calibri", Size: 11}},
		Fills:   []Fill{{}, {PatternType: "gray125"}},
		Borders: []Border{{}},
		CellXfs: []CellXf{{}},
	}
}

// GetOrAddFont returns the catalog index of font, appending it if no
// structurally equal entry exists.
func (r *StyleRegistry) GetOrAddFont(font Font) int {
	for i, f := range r.Fonts {
		if f == font {
			return i
		}
	}
	r.Fonts = append(r.Fonts, font)
	return len(r.Fonts) - 1
}

// GetOrAddFill returns the catalog index of fill, appending it if needed.
func (r *StyleRegistry) GetOrAddFill(fill Fill) int {
	for i, f := range r.Fills {
		if f == fill {
			return i
		}
	}
	r.Fills = append(r.Fills, fill)
	return len(r.Fills) - 1
}

// GetOrAddBorder returns the catalog index of border, appending it if needed.
func (r *StyleRegistry) GetOrAddBorder(border Border) int {
	for i, b := range r.Borders {
		if b == border {
			return i
		}
	}
	r.Borders = append(r.Borders, border)
	return len(r.Borders) - 1
}

// GetOrAddNumFmt returns the number-format ID for code: the built-in ID when
// the code matches a built-in format, an existing custom ID when already
// registered, or a new custom ID starting at 164.
func (r *StyleRegistry) GetOrAddNumFmt(code string) int {
	if id, ok := BuiltinNumFmtID(code); ok {
		return id
	}
	for _, nf := range r.NumFmts {
		if nf.Code == code {
			return nf.ID
		}
	}
	id := 164 + len(r.NumFmts)
	r.NumFmts = append(r.NumFmts, NumFmt{ID: id, Code: code})
	return id
}

// GetOrAddCellXf resolves each sub-component of style to a catalog index,
// builds the composed format entry and returns its deduplicated index.
func (r *StyleRegistry) GetOrAddCellXf(style *CellStyle) int {
	xf := CellXf{}
	if style.Font != nil {
		xf.FontID = r.GetOrAddFont(*style.Font)
		xf.ApplyFont = true
	}
	if style.Fill != nil {
		xf.FillID = r.GetOrAddFill(*style.Fill)
		xf.ApplyFill = true
	}
	if style.Border != nil {
		xf.BorderID = r.GetOrAddBorder(*style.Border)
		xf.ApplyBorder = true
	}
	if style.NumberFormat != "" {
		xf.NumFmtID = r.GetOrAddNumFmt(style.NumberFormat)
		xf.ApplyNumberFormat = true
	}
	if style.Alignment != nil {
		a := *style.Alignment
		xf.Alignment = &a
		xf.ApplyAlignment = true
	}
	if style.Protection != nil {
		p := *style.Protection
		xf.Protection = &p
		xf.ApplyProtection = true
	}

	for i, existing := range r.CellXfs {
		if existing.Equal(xf) {
			return i
		}
	}
	r.CellXfs = append(r.CellXfs, xf)
	return len(r.CellXfs) - 1
}

// GetCellStyle reconstructs a style view from the cell format at index.
// Returns nil for an out-of-range index.
func (r *StyleRegistry) GetCellStyle(index int) *CellStyle {
	if index < 0 || index >= len(r.CellXfs) {
		return nil
	}
	xf := r.CellXfs[index]
	style := &CellStyle{}
	if xf.ApplyFont && xf.FontID < len(r.Fonts) {
		f := r.Fonts[xf.FontID]
		style.Font = &f
	}
	if xf.ApplyFill && xf.FillID < len(r.Fills) {
		f := r.Fills[xf.FillID]
		style.Fill = &f
	}
	if xf.ApplyBorder && xf.BorderID < len(r.Borders) {
		b := r.Borders[xf.BorderID]
		style.Border = &b
	}
	if xf.ApplyNumberFormat {
		style.NumberFormat = r.NumFmtCode(xf.NumFmtID)
	}
	if xf.ApplyAlignment && xf.Alignment != nil {
		a := *xf.Alignment
		style.Alignment = &a
	}
	if xf.ApplyProtection && xf.Protection != nil {
		p := *xf.Protection
		style.Protection = &p
	}
	return style
}

// NumFmtCode returns the format code for a number-format ID, consulting the
// custom catalog first and the built-in table second. Returns "" if unknown.
func (r *StyleRegistry) NumFmtCode(id int) string {
	for _, nf := range r.NumFmts {
		if nf.ID == id {
			return nf.Code
		}
	}
	if code, ok := BuiltinNumFmtCode(id); ok {
		return code
	}
	return ""
}

// builtinNumFmts is the fixed table of built-in number formats, keyed in both
// directions below.
var builtinNumFmts = []NumFmt{
	{0, "General"},
	{1, "0"},
	{2, "0.00"},
	{3, "#,##0"},
	{4, "#,##0.00"},
	{9, "0%"},
	{10, "0.00%"},
	{11, "0.00E+00"},
	{14, "mm-dd-yy"},
	{15, "d-mmm-yy"},
	{16, "d-mmm"},
	{17, "mmm-yy"},
	{18, "h:mm AM/PM"},
	{19, "h:mm:ss AM/PM"},
	{20, "h:mm"},
	{21, "h:mm:ss"},
	{22, "m/d/yy h:mm"},
	{37, "#,##0 ;(#,##0)"},
	{38, "#,##0 ;[Red](#,##0)"},
	{39, "#,##0.00;(#,##0.00)"},
	{40, "#,##0.00;[Red](#,##0.00)"},
	{45, "mm:ss"},
	{46, "[h]:mm:ss"},
	{47, "mmss.0"},
	{48, "##0.0E+0"},
	{49, "@"},
}

var (
	builtinNumFmtByCode = func() map[string]int {
		m := make(map[string]int, len(builtinNumFmts))
		for _, nf := range builtinNumFmts {
			m[nf.Code] = nf.ID
		}
		return m
	}()
	builtinNumFmtByID = func() map[int]string {
		m := make(map[int]string, len(builtinNumFmts))
		for _, nf := range builtinNumFmts {
			m[nf.ID] = nf.Code
		}
		return m
	}()
)

// BuiltinNumFmtID looks up the built-in number-format ID for a format code.
func BuiltinNumFmtID(code string) (int, bool) {
	id, ok := builtinNumFmtByCode[code]
	return id, ok
}

// BuiltinNumFmtCode looks up the format code for a built-in number-format ID.
func BuiltinNumFmtCode(id int) (string, bool) {
	code, ok := builtinNumFmtByID[id]
	return code, ok
}

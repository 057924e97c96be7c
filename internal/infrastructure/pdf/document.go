package pdf

// JSON document description consumed by the doctpl renderer. Only the
// subset of the schema this package emits is mirrored here.

type document struct {
	Title    string  `json:"title,omitempty"`
	Author   string  `json:"author,omitempty"`
	PageSize string  `json:"pageSize,omitempty"`
	Margin   *margin `json:"margin,omitempty"`
	Font     *font   `json:"font,omitempty"`
	Header   *banner `json:"header,omitempty"`
	Footer   *banner `json:"footer,omitempty"`
	Pages    []page  `json:"pages"`
}

type margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

type font struct {
	Family string  `json:"family,omitempty"`
	Style  string  `json:"style,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

type banner struct {
	Text  string `json:"text"`
	Align string `json:"align,omitempty"`
}

type page struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type         string     `json:"type"`
	Text         string     `json:"text,omitempty"`
	Level        int        `json:"level,omitempty"`
	Align        string     `json:"align,omitempty"`
	Font         *font      `json:"font,omitempty"`
	Items        []string   `json:"items,omitempty"`
	Columns      []column   `json:"columns,omitempty"`
	Rows         [][]string `json:"rows,omitempty"`
	SpacerHeight float64    `json:"spacerHeight,omitempty"`
}

type column struct {
	Header string  `json:"header"`
	Width  float64 `json:"width,omitempty"`
	Align  string  `json:"align,omitempty"`
}

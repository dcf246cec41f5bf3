package types

type SceneKind string

const (
	SceneHook    SceneKind = "hook"
	SceneBuildup SceneKind = "buildup"
	SceneClimax  SceneKind = "climax"
	SceneCTA     SceneKind = "cta"
	SceneOther   SceneKind = "other"
)

func (k SceneKind) Valid() bool {
	switch k {
	case SceneHook, SceneBuildup, SceneClimax, SceneCTA, SceneOther:
		return true
	}
	return false
}

type Scene struct {
	Index       int       `json:"index"`
	Start       float64   `json:"start"`
	End         float64   `json:"end"`
	Kind        SceneKind `json:"kind"`
	Description string    `json:"description,omitempty"`
}

type TransitionKind string

const (
	TransitionCut    TransitionKind = "cut"
	TransitionFade   TransitionKind = "fade"
	TransitionZoom   TransitionKind = "zoom"
	TransitionSlide  TransitionKind = "slide"
	TransitionEffect TransitionKind = "effect"
)

type Transition struct {
	At    float64        `json:"at"`
	Kind  TransitionKind `json:"kind"`
	Style string         `json:"style,omitempty"`
}

type MusicCue struct {
	Time float64 `json:"time"`
	Kind string  `json:"kind"`
}

type AudioTiming struct {
	Beats     []float64  `json:"beats"`
	MusicCues []MusicCue `json:"music_cues"`
}

type VisualStyle struct {
	ColorGrading string   `json:"color_grading"`
	Effects      []string `json:"effects"`
	Filters      []string `json:"filters"`
}

type OverlayPosition string

const (
	OverlayTop    OverlayPosition = "top"
	OverlayCenter OverlayPosition = "center"
	OverlayBottom OverlayPosition = "bottom"
)

func (p OverlayPosition) Valid() bool {
	switch p {
	case OverlayTop, OverlayCenter, OverlayBottom:
		return true
	}
	return false
}

type TextOverlay struct {
	Start    float64         `json:"start"`
	End      float64         `json:"end"`
	Text     string          `json:"text"`
	Position OverlayPosition `json:"position"`
}

type Pacing string

const (
	PacingFast   Pacing = "fast"
	PacingMedium Pacing = "medium"
	PacingSlow   Pacing = "slow"
)

// Template is the aggregate editorial description extracted from one source
// video. It is assembled once per pipeline run and never mutated afterwards.
type Template struct {
	Name         string        `json:"name"`
	SourceRef    string        `json:"source_ref"`
	Duration     float64       `json:"duration"`
	Scenes       []Scene       `json:"scenes"`
	Transitions  []Transition  `json:"transitions"`
	AudioTiming  AudioTiming   `json:"audio_timing"`
	VisualStyle  VisualStyle   `json:"visual_style"`
	TextOverlays []TextOverlay `json:"text_overlays"`
	Pacing       Pacing        `json:"pacing"`
}

// EditingInstruction maps one point of a template's timing skeleton onto new
// content. Consumed by an external rendering layer.
type EditingInstruction struct {
	Timestamp  float64        `json:"timestamp"`
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

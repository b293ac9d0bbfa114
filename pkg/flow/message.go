package flow

// Message is the content union for a step: either plain text or a media
// descriptor. The document converter is the only place that translates the
// untagged wire shapes into these types.
type Message interface {
	// Preview returns a short human-readable form for listings and export.
	Preview() string

	message()
}

// TextMessage is a plain text step body.
type TextMessage struct {
	Body string
}

func (m TextMessage) Preview() string { return m.Body }
func (TextMessage) message()          {}

// MediaMessage is an image step body with an optional caption.
type MediaMessage struct {
	URL     string
	Caption string
}

func (m MediaMessage) Preview() string {
	if m.Caption != "" {
		return m.Caption
	}
	return m.URL
}
func (MediaMessage) message() {}

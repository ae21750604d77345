package notify

import "strings"

type MessageType int

const (
	MsgRecordingStarted MessageType = iota
	MsgTranscribing
	MsgColorDetected
	MsgNoColor
	MsgEmptyTranscript
	MsgRecognitionError
	MsgPermissionDenied
	MsgOperationCancelled
	MsgConfigReloaded
)

// Message is a resolved notification text.
type Message struct {
	Title   string
	Body    string
	IsError bool
}

// MessageDef describes a notification and where it can be overridden in the
// config file (notifications.messages.<ConfigKey>).
type MessageDef struct {
	Type         MessageType
	ConfigKey    string
	DefaultTitle string
	DefaultBody  string
	IsError      bool
}

// MessageDefs is the full catalogue. Bodies may contain %s, which is replaced
// by the detail passed with the notification (the hex code, an error).
var MessageDefs = []MessageDef{
	{MsgRecordingStarted, "recording_started", "hyprcolor", "Escuchando...", false},
	{MsgTranscribing, "transcribing", "hyprcolor", "Procesando...", false},
	{MsgColorDetected, "color_detected", "Color detectado", "%s", false},
	{MsgNoColor, "no_color", "hyprcolor", "No se detectó color", false},
	{MsgEmptyTranscript, "empty_transcript", "hyprcolor", "No se escuchó ninguna palabra", true},
	{MsgRecognitionError, "recognition_error", "hyprcolor", "Error al reconocer la voz", true},
	{MsgPermissionDenied, "permission_denied", "hyprcolor", "Permiso de grabación no otorgado", true},
	{MsgOperationCancelled, "operation_cancelled", "hyprcolor", "Operación cancelada", false},
	{MsgConfigReloaded, "config_reloaded", "hyprcolor", "Configuración recargada", false},
}

// DefaultMessages returns the catalogue with no overrides applied.
func DefaultMessages() map[MessageType]Message {
	out := make(map[MessageType]Message, len(MessageDefs))
	for _, def := range MessageDefs {
		out[def.Type] = Message{Title: def.DefaultTitle, Body: def.DefaultBody, IsError: def.IsError}
	}
	return out
}

func (m Message) withDetail(detail string) Message {
	if strings.Contains(m.Body, "%s") {
		m.Body = strings.Replace(m.Body, "%s", detail, 1)
	} else if detail != "" && m.IsError {
		m.Body = m.Body + ": " + detail
	}
	return m
}

func lookup(msgs map[MessageType]Message, mt MessageType) Message {
	if msg, ok := msgs[mt]; ok {
		return msg
	}
	for _, def := range MessageDefs {
		if def.Type == mt {
			return Message{Title: def.DefaultTitle, Body: def.DefaultBody, IsError: def.IsError}
		}
	}
	return Message{Title: "hyprcolor"}
}

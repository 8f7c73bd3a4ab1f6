package domain

import "time"

// EventType defines the category of an authoring event.
type EventType string

const (
	EventPrimDefine       EventType = "prim_define"
	EventPrimRemove       EventType = "prim_remove"
	EventInheritChange    EventType = "inherit_change"
	EventPropertyCreate   EventType = "property_create"
	EventValueChange      EventType = "value_change"
	EventConnectionChange EventType = "connection_change"
	EventMetadataChange   EventType = "metadata_change"
	EventDictionaryChange EventType = "dictionary_change"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PrimEvent reports a change to a prim itself.
type PrimEvent struct {
	EventBase
	Path      Path      `json:"path"`
	Specifier Specifier `json:"specifier,omitempty"`
	TypeName  string    `json:"type_name,omitempty"`
}

// PropertyEvent reports a change to an attribute or a dictionary field.
// Field names the touched part: a metadata or dictionary key, "connections", "value".
type PropertyEvent struct {
	EventBase
	Path     Path   `json:"path"`
	Property string `json:"property"`
	Field    string `json:"field,omitempty"`
	Cleared  bool   `json:"cleared,omitempty"`
}

// LifecycleHooks defines callbacks for authoring observability.
type LifecycleHooks struct {
	OnPrimChange     func(*PrimEvent)
	OnPropertyChange func(*PropertyEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnPrimChange: func(e *PrimEvent) {
			if h.OnPrimChange != nil {
				h.OnPrimChange(e)
			}
			if other.OnPrimChange != nil {
				other.OnPrimChange(e)
			}
		},
		OnPropertyChange: func(e *PropertyEvent) {
			if h.OnPropertyChange != nil {
				h.OnPropertyChange(e)
			}
			if other.OnPropertyChange != nil {
				other.OnPropertyChange(e)
			}
		},
	}
}

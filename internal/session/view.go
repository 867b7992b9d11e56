package session

import "photosuite/internal/domain"

// View is an immutable snapshot of a session for rendering.
type View struct {
	Status       Status               `json:"status"`
	HasImage     bool                 `json:"has_image"`
	ImageName    string               `json:"image_name,omitempty"`
	ImageURL     string               `json:"image_url,omitempty"`
	Selection    domain.ToolSelection `json:"selection"`
	Result       string               `json:"result,omitempty"`
	ErrorCode    string               `json:"error_code,omitempty"`
	ErrorMessage string               `json:"error_message,omitempty"`
	ErrorDetail  string               `json:"error_detail,omitempty"`
	InFlight     bool                 `json:"in_flight"`
	ShowWelcome  bool                 `json:"show_welcome"`
}

// View returns the current state. At most one of Result and ErrorMessage is
// set, and neither is set while an attempt is in flight.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Selection:    s.sel,
		Result:       s.result,
		ErrorCode:    s.errCode,
		ErrorMessage: s.errMsg,
		ErrorDetail:  s.errDetail,
		InFlight:     s.inFlight,
		ShowWelcome:  s.showWelcome,
	}
	if s.image != nil {
		v.HasImage = true
		v.ImageName = s.image.Name
		v.ImageURL = s.image.Ref.URL()
	}
	v.Status = s.statusLocked()
	return v
}

func (s *Session) statusLocked() Status {
	switch {
	case s.image == nil:
		return StatusIdle
	case s.inFlight:
		return StatusInFlight
	case s.errMsg != "":
		return StatusError
	default:
		return StatusReady
	}
}

package engine

import "goalline/internal/export"

// ExportPayload carries the rendered career artifacts.
type ExportPayload struct {
	CSV   string `json:"csv"`
	Sheet string `json:"sheet"`
}

// Export renders the session's career history. Read-only.
func (s *Service) Export(id string) (ExportPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.careers[id]
	if !ok {
		return ExportPayload{}, ErrUnknownCareer
	}
	return ExportPayload{
		CSV:   export.CSV(sess.career),
		Sheet: export.Sheet(sess.career),
	}, nil
}

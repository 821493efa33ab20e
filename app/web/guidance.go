package web

import "net/http"

// GuidanceTopic is a static career guidance entry
type GuidanceTopic struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// static guidance content, served as-is
var guidanceTopics = []GuidanceTopic{
	{
		ID:    "resume",
		Title: "Resume Tips",
		Points: []string{
			"Keep it short (1 page)",
			"Highlight skills & local experience",
			"Use simple language",
		},
	},
	{
		ID:    "interview",
		Title: "Interview Tips",
		Points: []string{
			"Be on time",
			"Speak clearly and honestly",
			"Dress neatly",
		},
	},
	{
		ID:    "stories",
		Title: "Success Stories",
		Points: []string{
			"Seema completed digital literacy and got a data entry job in her taluka office.",
		},
	},
}

// handleGuidanceTopics lists all guidance topics
func (s *Server) handleGuidanceTopics(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, guidanceTopics)
}

// handleGuidance returns a single guidance topic by id
func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("topic")
	for _, topic := range guidanceTopics {
		if topic.ID == id {
			s.writeJSON(w, http.StatusOK, topic)
			return
		}
	}
	s.writeJSONError(w, http.StatusNotFound, "unknown guidance topic")
}

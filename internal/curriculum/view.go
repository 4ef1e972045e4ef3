package curriculum

import "maps"

// View is a read-only snapshot of one subject's curriculum. It shares no
// memory with the Store.
type View struct {
	Subject      string                 `json:"subject"`
	Topics       []string               `json:"topics"`
	CurrentIndex int                    `json:"current_index"`
	CurrentTopic string                 `json:"current_topic,omitempty"`
	Visited      map[string]bool        `json:"visited"`
	Status       map[string]TopicStatus `json:"status"`
	Theory       map[string]string      `json:"-"`
}

func (st *state) view(subject string) View {
	v := View{
		Subject:      subject,
		Topics:       append([]string(nil), st.topics...),
		CurrentIndex: st.current,
		Visited:      make(map[string]bool, len(st.visited)),
		Status:       maps.Clone(st.status),
		Theory:       maps.Clone(st.theory),
	}
	if st.selected {
		v.CurrentTopic = st.topics[st.current]
	}
	for t := range st.visited {
		v.Visited[t] = true
	}
	return v
}

// Selected reports whether a topic is currently open.
func (v View) Selected() bool {
	return v.CurrentTopic != ""
}

// StatusOf returns the status of topic, StatusNotStarted when unset.
func (v View) StatusOf(topic string) TopicStatus {
	return v.Status[topic]
}

// HasTheory reports whether theory for topic has been generated.
func (v View) HasTheory(topic string) bool {
	_, ok := v.Theory[topic]
	return ok
}

// Label is the topic title followed by its status icon, if any.
func (v View) Label(topic string) string {
	if icon := v.StatusOf(topic).Icon(); icon != "" {
		return topic + " " + icon
	}
	return topic
}

// Previous returns the topic before the current one.
func (v View) Previous() (string, bool) {
	if !v.Selected() || v.CurrentIndex == 0 {
		return "", false
	}
	return v.Topics[v.CurrentIndex-1], true
}

// Next returns the topic after the current one.
func (v View) Next() (string, bool) {
	if !v.Selected() || v.CurrentIndex >= len(v.Topics)-1 {
		return "", false
	}
	return v.Topics[v.CurrentIndex+1], true
}

// VisitedCount is the number of distinct topics opened so far.
func (v View) VisitedCount() int {
	return len(v.Visited)
}

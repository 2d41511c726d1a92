// Package assistant relays a browser's voice conversation to the hosted
// coaching assistant over websockets and persists the plan it produces.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"pulsemind/fitness-coach/internal/config"
	"pulsemind/fitness-coach/internal/domain"
)

// Event types exchanged with the assistant service.
const (
	EventCallStart   = "call-start"
	EventCallEnd     = "call-end"
	EventSpeechStart = "speech-start"
	EventSpeechEnd   = "speech-end"
	EventTranscript  = "transcript"
	EventError       = "error"
	EventPlan        = "plan"
)

// TranscriptFinal marks a transcript event that is safe to display;
// partial transcripts are interim recognizer output.
const TranscriptFinal = "final"

// Event is the envelope for text frames on both legs of the relay.
type Event struct {
	Type           string       `json:"type"`
	Role           string       `json:"role,omitempty"`
	Transcript     string       `json:"transcript,omitempty"`
	TranscriptType string       `json:"transcriptType,omitempty"`
	Message        string       `json:"message,omitempty"`
	Plan           *PlanPayload `json:"plan,omitempty"`
}

// PlanPayload carries a generated fitness plan inside a plan event.
type PlanPayload struct {
	Name        string             `json:"name"`
	WorkoutPlan domain.WorkoutPlan `json:"workoutPlan"`
	DietPlan    domain.DietPlan    `json:"dietPlan"`
}

// User-facing messages for classified upstream errors.
const (
	msgCapacity     = "AI service is temporarily unavailable due to high demand. Please try again in a few moments."
	msgConnectivity = "Network connection issue. Please check your internet and try again."
	msgGeneric      = "An error occurred. Please try again or contact support if the issue persists."
	msgUnexpected   = "An unexpected error occurred. Please try again."
)

// ClassifyError maps a raw upstream error message to a message fit for
// display.
func ClassifyError(message string) string {
	if message == "" {
		return msgUnexpected
	}
	if strings.Contains(message, "quota") || strings.Contains(message, "429") {
		return msgCapacity
	}
	if strings.Contains(message, "network") || strings.Contains(message, "fetch") {
		return msgConnectivity
	}
	return msgGeneric
}

// Suppressor drops known-noise upstream errors, like the end-of-call
// hangup the assistant service reports as an error.
type Suppressor struct {
	patterns []string
}

// NewSuppressor builds a matcher over the configured substrings.
func NewSuppressor(patterns []string) *Suppressor {
	return &Suppressor{patterns: patterns}
}

// Match reports whether the message hits any suppression pattern.
func (s *Suppressor) Match(message string) bool {
	for _, pattern := range s.patterns {
		if pattern != "" && strings.Contains(message, pattern) {
			return true
		}
	}
	return false
}

// PlanCreator persists a plan generated during a conversation.
type PlanCreator interface {
	CreatePlan(ctx context.Context, userID, name string, workout domain.WorkoutPlan, diet domain.DietPlan) (*domain.Plan, error)
}

// Bridge proxies websocket traffic between a browser and the hosted
// assistant, adapting events on the way down.
type Bridge struct {
	cfg      config.AssistantConfig
	plans    PlanCreator
	suppress *Suppressor
	upgrader websocket.Upgrader
}

// NewBridge creates a relay bound to the configured assistant service.
func NewBridge(cfg config.AssistantConfig, plans PlanCreator) *Bridge {
	return &Bridge{
		cfg:      cfg,
		plans:    plans,
		suppress: NewSuppressor(cfg.SuppressPatterns),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Relay upgrades the request, dials the assistant and shuttles frames
// both ways until either side disconnects.
func (b *Bridge) Relay(w http.ResponseWriter, r *http.Request, userID, userName string) {
	clientConn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR: Failed to upgrade client websocket: %v", err)
		return
	}
	defer clientConn.Close()

	upstreamURL, err := b.dialURL(userID, userName)
	if err != nil {
		log.Printf("ERROR: Invalid assistant URL: %v", err)
		clientConn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "assistant service misconfigured"))
		return
	}

	header := http.Header{}
	if b.cfg.APIKey != "" {
		header.Set("Authorization", "Bearer "+b.cfg.APIKey)
	}
	upstreamConn, _, err := websocket.DefaultDialer.Dial(upstreamURL, header)
	if err != nil {
		log.Printf("ERROR: Failed to connect to assistant service: %v", err)
		clientConn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "could not reach the assistant service"))
		return
	}
	defer upstreamConn.Close()

	var wg sync.WaitGroup
	wg.Add(2)

	// Client to assistant: audio and control frames pass through untouched.
	go func() {
		defer wg.Done()
		for {
			messageType, payload, err := clientConn.ReadMessage()
			if err != nil {
				upstreamConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := upstreamConn.WriteMessage(messageType, payload); err != nil {
				return
			}
		}
	}()

	// Assistant to client: text frames go through the event adapter.
	go func() {
		defer wg.Done()
		for {
			messageType, payload, err := upstreamConn.ReadMessage()
			if err != nil {
				clientConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if messageType == websocket.TextMessage {
				adapted, forward := b.adaptEvent(r.Context(), userID, payload)
				if !forward {
					continue
				}
				payload = adapted
			}
			if err := clientConn.WriteMessage(messageType, payload); err != nil {
				return
			}
		}
	}()

	wg.Wait()
}

func (b *Bridge) dialURL(userID, userName string) (string, error) {
	u, err := url.Parse(b.cfg.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse assistant url: %w", err)
	}
	q := u.Query()
	q.Set("assistant_id", b.cfg.AssistantID)
	q.Set("user_id", userID)
	q.Set("full_name", userName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// adaptEvent rewrites or drops one downstream text frame. Frames that
// do not decode as events pass through unchanged.
func (b *Bridge) adaptEvent(ctx context.Context, userID string, payload []byte) ([]byte, bool) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return payload, true
	}

	switch event.Type {
	case EventTranscript:
		// Interim transcripts are noise for the conversation log.
		if event.TranscriptType != TranscriptFinal {
			return nil, false
		}
		return payload, true

	case EventError:
		if b.suppress.Match(event.Message) {
			log.Printf("INFO: Ignoring known assistant error: %s", event.Message)
			return nil, false
		}
		event.Message = ClassifyError(event.Message)
		adapted, err := json.Marshal(event)
		if err != nil {
			return payload, true
		}
		return adapted, true

	case EventPlan:
		if event.Plan == nil {
			return nil, false
		}
		plan, err := b.plans.CreatePlan(ctx, userID, event.Plan.Name, event.Plan.WorkoutPlan, event.Plan.DietPlan)
		if err != nil {
			log.Printf("ERROR: Failed to save generated plan for user %s: %v", userID, err)
			adapted, _ := json.Marshal(Event{Type: EventError, Message: msgGeneric})
			return adapted, true
		}
		log.Printf("INFO: Saved generated plan %s for user %s", plan.ID.Hex(), userID)
		return payload, true

	default:
		return payload, true
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/guttosm/suppository-service/internal/compounding"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/guttosm/suppository-service/internal/metrics"
	"github.com/guttosm/suppository-service/internal/service/cache"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSessionNotFound is returned for unknown or expired chat sessions.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrEmptyMessage is returned for blank chat messages.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrMessageTooLong is returned when a message exceeds the configured length.
	ErrMessageTooLong = errors.New("message too long")
)

// Chat commands.
const (
	CommandCompute = "compute"
	CommandReset   = "reset"
	CommandExample = "example"
)

const (
	defaultMaxMessageLength = 2000
	sessionLockShards       = 64
)

var computePattern = regexp.MustCompile(`(?i)\bcompute\b`)

var missingLabels = map[string]string{
	model.FieldUnitCount:          "N",
	model.FieldBlankWeightPerUnit: "blank per unit (g)",
	model.FieldBaseDensity:        "base density (g/mL)",
	model.FieldComponents:         "at least one API with amount and rho",
}

// ExampleState is the worked example loaded by the "example" command:
// one suppository, 2 g blank, base density 1.0 g/mL, 200 mg API at 3.0 g/mL.
func ExampleState() model.ChatState {
	n := 1
	blank := 2.0
	base := 1.0
	return model.ChatState{
		UnitCount:           &n,
		BlankWeightPerUnitG: &blank,
		BaseDensityGPerML:   &base,
		Components: []model.APIComponent{
			{Name: compounding.DefaultComponentName(1), AmountPerUnitG: 0.2, DensityGPerML: 3.0},
		},
	}
}

// SessionStore persists chat sessions. Get returns nil, nil for a missing session.
type SessionStore interface {
	Get(ctx context.Context, id string) (*model.ChatSession, error)
	Save(ctx context.Context, session *model.ChatSession) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	SessionID string          `json:"session_id"`
	Command   string          `json:"command,omitempty"`
	Lines     []string        `json:"lines"`
	State     model.ChatState `json:"state"`
	Missing   []string        `json:"missing"`
	Updated   []string        `json:"updated,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
	Outcome   *Outcome        `json:"outcome,omitempty"`
}

// Text joins the reply lines.
func (r *ChatReply) Text() string {
	return strings.Join(r.Lines, "\n")
}

// ChatService runs conversational calculation sessions.
type ChatService interface {
	Start(ctx context.Context) (*ChatReply, error)
	Get(ctx context.Context, id string) (*model.ChatSession, error)
	Send(ctx context.Context, id, text string) (*ChatReply, error)
	End(ctx context.Context, id string) error
}

// ChatOption configures a ChatServiceImpl.
type ChatOption func(*ChatServiceImpl)

// WithMaxMessageLength caps message length in characters.
func WithMaxMessageLength(n int) ChatOption {
	return func(s *ChatServiceImpl) {
		if n > 0 {
			s.maxMessageLength = n
		}
	}
}

// ChatServiceImpl implements ChatService. Each message is a read-modify-write
// of one session, serialized per session ID.
type ChatServiceImpl struct {
	store            SessionStore
	calculator       Calculator
	maxMessageLength int
	locks            [sessionLockShards]sync.Mutex
}

// NewChatService creates a chat service over the given store and calculator.
func NewChatService(store SessionStore, calculator Calculator, opts ...ChatOption) *ChatServiceImpl {
	s := &ChatServiceImpl{
		store:            store,
		calculator:       calculator,
		maxMessageLength: defaultMaxMessageLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ChatServiceImpl) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%sessionLockShards]
}

// Start creates an empty session and returns the greeting.
func (s *ChatServiceImpl) Start(ctx context.Context) (*ChatReply, error) {
	session := &model.ChatSession{ID: uuid.NewString()}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save chat session: %w", err)
	}
	s.refreshActiveSessions(ctx)

	return &ChatReply{
		SessionID: session.ID,
		Lines:     greeting(),
		State:     session.State,
		Missing:   session.State.Missing(),
	}, nil
}

// Get returns the session or ErrSessionNotFound.
func (s *ChatServiceImpl) Get(ctx context.Context, id string) (*model.ChatSession, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load chat session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// End deletes the session.
func (s *ChatServiceImpl) End(ctx context.Context, id string) error {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	s.refreshActiveSessions(ctx)
	return nil
}

// Send handles one user message. "reset" and "example" must be the whole
// message; "compute" may appear anywhere as a word. Anything else is parsed
// for inputs.
func (s *ChatServiceImpl) Send(ctx context.Context, id, text string) (*ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.RecordChatMessage("rejected")
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > s.maxMessageLength {
		metrics.RecordChatMessage("rejected")
		return nil, ErrMessageTooLong
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reply := &ChatReply{SessionID: id}
	outcome := "parsed"

	switch lower := strings.ToLower(text); {
	case lower == CommandReset:
		reply.Command = CommandReset
		session.State = model.ChatState{}
		reply.Lines = []string{"Inputs cleared. Start again with N, blank, base and your APIs."}
		outcome = CommandReset

	case lower == CommandExample:
		reply.Command = CommandExample
		session.State = ExampleState()
		reply.Lines = exampleLines(session.State)
		outcome = CommandExample

	case computePattern.MatchString(text):
		reply.Command = CommandCompute
		if !session.State.Complete() {
			reply.Lines = []string{"I still need: " + missingText(session.State.Missing()) + "."}
			outcome = "incomplete"
			break
		}
		out, err := s.calculator.Calculate(ctx, RawFromState(session.State))
		if err != nil {
			metrics.RecordChatMessage("failed")
			return nil, err
		}
		reply.Outcome = &out
		reply.Lines = append(append([]string{}, out.Explanation...), compounding.CoachingNotes(out.Coaching)...)
		outcome = "computed"

	default:
		parsed := compounding.ParseText(session.State, text)
		session.State = parsed.State
		reply.Updated = parsed.Updated
		reply.Warnings = parsed.Warnings
		reply.Lines = parseLines(parsed)
		for _, field := range parsed.Updated {
			metrics.RecordParsedField(fieldLabel(field))
		}
		if len(parsed.Updated) == 0 {
			outcome = "unrecognized"
		}
	}

	session.Messages++
	if err := s.store.Save(ctx, session); err != nil {
		metrics.RecordChatMessage("failed")
		return nil, fmt.Errorf("save chat session: %w", err)
	}

	reply.State = session.State
	reply.Missing = session.State.Missing()
	metrics.RecordChatMessage(outcome)
	log.Debug().
		Str("session_id", id).
		Str("outcome", outcome).
		Strs("updated", reply.Updated).
		Msg("chat message handled")
	return reply, nil
}

func (s *ChatServiceImpl) refreshActiveSessions(ctx context.Context) {
	n, err := s.store.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count chat sessions")
		return
	}
	metrics.SetActiveSessions(int(n))
}

// RawFromState converts a complete chat state to structured input so it goes
// through the same normalization and defaults as a form submission.
func RawFromState(state model.ChatState) model.RawBatchInput {
	raw := model.RawBatchInput{
		UnitCount:           state.UnitCount,
		BlankWeightPerUnitG: state.BlankWeightPerUnitG,
		BaseDensityGPerML:   state.BaseDensityGPerML,
		Components:          make([]model.RawComponent, len(state.Components)),
	}
	for i, c := range state.Components {
		rc := model.RawComponent{Name: c.Name, Amount: c.AmountPerUnitG, Unit: compounding.UnitGram}
		if c.Mode() == model.ModeDisplacementFactor {
			df := c.DisplacementFactor
			rc.DisplacementFactor = &df
		} else {
			d := c.DensityGPerML
			rc.Density = &d
		}
		raw.Components[i] = rc
	}
	return raw
}

func greeting() []string {
	return []string{
		"Hi! Tell me your inputs and I'll work out the required base using the five-step method.",
		"Paste everything on one line, for example: N=1; blank 2 g; base 1.0; API: 200 mg (rho 3.0)",
		"Or give them one at a time: number of suppositories, blank weight per unit, base density, and each API like \"Drug A 150 mg, rho 1.2\".",
		"Type compute when you're ready, example to load a worked example, or reset to start over.",
	}
}

func exampleLines(state model.ChatState) []string {
	lines := []string{"Loaded the worked example."}
	if in, err := compounding.Normalize(RawFromState(state)); err == nil {
		if text, err := compounding.FormatText(in); err == nil {
			lines = append(lines, text)
		}
	}
	return append(lines, "Type compute to see the steps.")
}

func parseLines(parsed compounding.ParseResult) []string {
	var lines []string
	switch {
	case len(parsed.Updated) == 0:
		lines = append(lines, "I couldn't find any inputs in that. Try something like: N=12; blank 1.8 g; base 0.95; API: Drug A 150 mg, rho 1.2")
	case len(parsed.Missing) > 0:
		lines = append(lines, "Got it. Still need: "+missingText(parsed.Missing)+".")
	default:
		lines = append(lines, "Inputs captured. Type compute to see the five-step solution, or keep editing values.")
	}
	for _, w := range parsed.Warnings {
		lines = append(lines, "Note: "+w)
	}
	return append(lines, summaryLines(parsed.State)...)
}

// summaryLines lists the current inputs, one per line.
func summaryLines(state model.ChatState) []string {
	const unset = "not set"
	n, blank, base := unset, unset, unset
	if state.UnitCount != nil {
		n = fmt.Sprintf("%d", *state.UnitCount)
	}
	if state.BlankWeightPerUnitG != nil {
		blank = compounding.Fixed4(*state.BlankWeightPerUnitG) + " g"
	}
	if state.BaseDensityGPerML != nil {
		base = compounding.Fixed4(*state.BaseDensityGPerML) + " g/mL"
	}

	lines := []string{
		"N = " + n,
		"Blank per unit = " + blank,
		"Base density = " + base,
	}
	for _, c := range state.Components {
		lines = append(lines, fmt.Sprintf("%s: %s g, rho %s g/mL", c.Name, compounding.Fixed4(c.AmountPerUnitG), compounding.Fixed4(c.DensityGPerML)))
	}
	return lines
}

func missingText(missing []string) string {
	labels := make([]string, len(missing))
	for i, m := range missing {
		labels[i] = fieldLabel(m)
		if l, ok := missingLabels[m]; ok {
			labels[i] = l
		}
	}
	return strings.Join(labels, ", ")
}

// fieldLabel strips the component name from "components:<name>".
func fieldLabel(field string) string {
	if i := strings.IndexByte(field, ':'); i >= 0 {
		return field[:i]
	}
	return field
}

// MemorySessionStore keeps sessions in one LRU/TTL cache, so capacity is a
// store-wide limit. Sessions idle longer than the TTL, or least recently used
// when the store is full, are gone.
type MemorySessionStore struct {
	cache cache.CacheWithMetrics[model.ChatSession]
}

// NewMemorySessionStore creates an in-memory store holding up to capacity sessions.
func NewMemorySessionStore(capacity int, ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{cache: NewTTLCache[model.ChatSession]("chat_sessions", capacity, ttl)}
}

// Get returns a copy of the stored session.
func (m *MemorySessionStore) Get(_ context.Context, id string) (*model.ChatSession, error) {
	session, ok := m.cache.Get(id)
	if !ok {
		return nil, nil
	}
	session.State = session.State.Clone()
	return &session, nil
}

// Save stores a copy of the session and refreshes its expiry.
func (m *MemorySessionStore) Save(_ context.Context, session *model.ChatSession) error {
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	stored := *session
	stored.State = session.State.Clone()
	m.cache.Set(session.ID, stored)
	return nil
}

// Delete removes the session.
func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.cache.Invalidate(id)
	return nil
}

// Count returns the number of sessions currently held.
func (m *MemorySessionStore) Count(context.Context) (int64, error) {
	return int64(m.cache.Len()), nil
}

// Stop releases the cache's cleanup goroutine.
func (m *MemorySessionStore) Stop() {
	m.cache.Stop()
}

var (
	_ ChatService  = (*ChatServiceImpl)(nil)
	_ SessionStore = (*MemorySessionStore)(nil)
)

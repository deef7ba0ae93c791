// Package session runs the interactive console conversation.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"hosllm/internal/analytics"
	"hosllm/internal/historian"
	"hosllm/internal/history"
	"hosllm/internal/query"
	"hosllm/internal/storage"
)

const (
	cmdExit      = "exit"
	cmdHelp      = "help"
	cmdHistory   = "history"
	cmdReset     = "reset"
	cmdStats     = "stats"
	cmdStatsJSON = "stats json"

	replyPrefix = "HOSLLM: "
	prompt      = "You: "

	// maxLineBytes caps one line of input; longer lines are discarded with a notice.
	maxLineBytes = 1 << 20
	readBufSize  = 64 * 1024
)

type Answerer interface {
	Answer(ctx context.Context, q string) historian.Reply
}

type Session struct {
	in           *bufio.Reader
	maxLine      int
	out          io.Writer
	historian    Answerer
	history      *history.Manager
	recorder     storage.Recorder
	historyLimit int
	entries      int
	now          func() time.Time
}

type Option func(*Session)

// WithRecorder enables the JSONL transcript and the stats command.
func WithRecorder(r storage.Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// WithLoadedCount sets the number of dataset entries announced in the banner.
func WithLoadedCount(n int) Option {
	return func(s *Session) { s.entries = n }
}

func New(in io.Reader, out io.Writer, h Answerer, opts ...Option) *Session {
	s := &Session{
		in:           bufio.NewReaderSize(in, readBufSize),
		maxLine:      maxLineBytes,
		out:          out,
		historian:    h,
		history:      history.NewManager(),
		historyLimit: 10,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run reads lines until "exit", end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.printf("✅ Loaded %d historical entries\n", s.entries)
	s.printf("\n🟢 Welcome to HOSLLM - Your AI Historian!\n")
	s.printf("🔴 Type 'exit' to quit the chat.\n")
	s.printf("🔵 Type 'help' for assistance.\n\n")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printf(prompt)
		raw, tooLong, err := s.readLine()
		if errors.Is(err, io.EOF) {
			s.printf("\n🔴 Exiting chat. Goodbye!\n")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if tooLong {
			log.Warnf("discarded input line longer than %d bytes", s.maxLine)
			s.printf("🔵 That message is too long. Please keep it under %d KiB.\n\n", s.maxLine/1024)
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch strings.ToLower(line) {
		case cmdExit:
			s.printf("\n🔴 Exiting chat. Goodbye!\n")
			return nil
		case cmdHelp:
			s.printHelp()
			continue
		case cmdHistory:
			s.printHistory()
			continue
		case cmdReset:
			s.history.Reset()
			s.printf("🔵 Conversation history cleared.\n\n")
			continue
		case cmdStats:
			s.printStats(false)
			continue
		case cmdStatsJSON:
			s.printStats(true)
			continue
		}

		s.handleQuery(ctx, line)
	}
}

func (s *Session) handleQuery(ctx context.Context, line string) {
	q := s.followUp(line)
	log.Infof("Incoming query: %q", q)

	s.history.AppendUser(q)
	reply := s.historian.Answer(ctx, q)
	s.history.AppendAssistant(reply.Text)

	s.printf("%s%s\n\n", replyPrefix, reply.Text)

	if s.recorder != nil {
		ev := storage.Event{
			Timestamp: s.now(),
			Query:     q,
			Intent:    string(reply.Intent.Kind),
			Source:    reply.Source,
			Response:  reply.Text,
		}
		if err := s.recorder.AppendInteraction(ev); err != nil {
			log.Warnf("failed to record interaction: %v", err)
		}
	}
}

// readLine returns the next line of input. A line longer than maxLine is
// drained from the reader and reported as too long instead of being buffered.
// io.EOF is returned only when no input is left.
func (s *Session) readLine() (string, bool, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		chunk, err := s.in.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > s.maxLine {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong):
			return string(buf), tooLong, nil
		case err != nil:
			return "", false, err
		}
		return string(buf), tooLong, nil
	}
}

// followUp turns a bare "wiki" into a Wikipedia lookup of the previous question.
func (s *Session) followUp(line string) string {
	in := query.Classify(line)
	if in.Kind != query.KindWiki || in.Topic != "" {
		return line
	}
	last, ok := s.history.LastUser()
	if !ok {
		return line
	}
	if prev := query.Classify(last.Content); prev.Kind == query.KindWiki {
		return last.Content
	}
	return "wiki " + last.Content
}

func (s *Session) printHelp() {
	s.printf("\n🔵 You can ask about historical events, people, or years.\n")
	s.printf("🔵 To search Wikipedia, type 'wiki <topic>' (a bare 'wiki' looks up your previous question).\n")
	s.printf("🔵 To find events in a date range, type '<start_year>-<end_year>'.\n")
	s.printf("🔵 To find wars in a date range, type 'What wars occurred from <start_year> to <end_year>'.\n")
	s.printf("🔵 Type 'history' to see recent messages, 'reset' to clear them, 'stats' for today's usage ('stats json' for detail).\n\n")
}

func (s *Session) printHistory() {
	msgs := s.history.Recent(s.historyLimit)
	if len(msgs) == 0 {
		s.printf("🔵 No conversation history yet.\n\n")
		return
	}
	for _, m := range msgs {
		who := prompt
		if m.Role == history.RoleAssistant {
			who = replyPrefix
		}
		s.printf("%s%s\n", who, m.Content)
	}
	s.printf("\n")
}

// printStats reports the exchanges of the current local calendar day.
func (s *Session) printStats(asJSON bool) {
	if s.recorder == nil {
		s.printf("🔵 Statistics are unavailable: transcript recording is disabled.\n\n")
		return
	}
	today := s.now()
	events, err := s.recorder.LoadDay(today)
	if err != nil {
		log.Errorf("failed to load transcript: %v", err)
		s.printf("🔵 Statistics are unavailable right now.\n\n")
		return
	}
	stats := analytics.AnalyzeDailyLogs(events, today)
	if !asJSON {
		s.printf("%s\n\n", stats.GenerateReportSummary())
		return
	}
	js, err := stats.ToJSON()
	if err != nil {
		log.Errorf("failed to encode stats: %v", err)
		s.printf("🔵 Statistics are unavailable right now.\n\n")
		return
	}
	s.printf("%s\n\n", js)
}

func (s *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(s.out, format, args...); err != nil {
		log.Debugf("write output: %v", err)
	}
}

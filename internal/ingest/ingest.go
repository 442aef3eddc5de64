// Package ingest builds an input document from local .eml files, standing
// in for a mailbox export.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bimmerbailey/penmark/internal/anonymize"
	"github.com/bimmerbailey/penmark/internal/corpus"
	"github.com/bimmerbailey/penmark/internal/logging"
	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

// ErrNoMessages is returned when none of the given files could be parsed.
var ErrNoMessages = errors.New("no parseable messages")

func init() {
	// Legacy charsets common in sent mail.
	charset.RegisterEncoding("windows-1252", charmap.Windows1252)
	charset.RegisterEncoding("iso-8859-1", charmap.ISO8859_1)
	charset.RegisterEncoding("iso-8859-15", charmap.ISO8859_15)
}

// Message is a parsed email together with its send time.
type Message struct {
	Record corpus.RawRecord
	Sent   time.Time
}

// ParseFile parses the .eml file at path.
func ParseFile(path string) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a single RFC 5322 message. The HTML part is preferred over
// plain text when both are present.
func Parse(r io.Reader) (*Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail reader: %w", err)
	}
	defer mr.Close()

	header := mr.Header
	msg := &Message{}

	id, _ := header.MessageID()
	if id == "" {
		id = uuid.NewString()
	}
	msg.Record.ID = corpus.NewRecordID(id)

	subject, err := header.Subject()
	if err != nil {
		subject = header.Get("Subject")
	}
	msg.Record.Subject = subject

	if date, err := header.Date(); err == nil && !date.IsZero() {
		msg.Sent = date
		msg.Record.SentDate = date.UTC().Format(time.RFC3339)
	}

	var text, html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read part: %w", err)
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, part.Body); err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}

		switch {
		case strings.HasPrefix(contentType, "text/html"):
			html = buf.String()
		case strings.HasPrefix(contentType, "text/plain") && text == "":
			text = buf.String()
		}
	}

	if html != "" {
		msg.Record.Body = html
		msg.Record.BodyType = corpus.BodyHTML
	} else {
		msg.Record.Body = text
		msg.Record.BodyType = corpus.BodyPlain
	}
	msg.Record.WordCount = corpus.CountWords(anonymize.Normalize(msg.Record.Body, msg.Record.BodyType.IsMarkup()))

	return msg, nil
}

// Ingester turns a set of message files into an input document.
type Ingester struct {
	logger logrus.FieldLogger
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithLogger sets the logger that reports skipped files.
func WithLogger(l logrus.FieldLogger) Option {
	return func(i *Ingester) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates a new Ingester.
func New(opts ...Option) *Ingester {
	i := &Ingester{logger: logging.Discard()}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest parses every file in paths. Files that cannot be parsed are logged
// and skipped. Emails are ordered newest first; undated emails come last.
func (i *Ingester) Ingest(paths []string) (*corpus.InputDocument, error) {
	var messages []*Message
	for _, path := range paths {
		msg, err := ParseFile(path)
		if err != nil {
			i.logger.WithError(err).WithField("path", path).Warn("skipping unparseable message")
			continue
		}
		i.logger.WithFields(logrus.Fields{
			"path": path,
			"id":   msg.Record.ID.String(),
		}).Debug("parsed message")
		messages = append(messages, msg)
	}

	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	sort.SliceStable(messages, func(a, b int) bool {
		ta, tb := messages[a].Sent, messages[b].Sent
		if ta.IsZero() != tb.IsZero() {
			return !ta.IsZero()
		}
		return ta.After(tb)
	})

	doc := &corpus.InputDocument{Emails: make([]corpus.RawRecord, len(messages))}
	for n, m := range messages {
		doc.Emails[n] = m.Record
	}

	rng, err := dateRange(messages)
	if err != nil {
		return nil, err
	}
	doc.DateRange = rng

	return doc, nil
}

// dateRange expects messages sorted newest first.
func dateRange(messages []*Message) (json.RawMessage, error) {
	var oldest, newest time.Time
	for _, m := range messages {
		if m.Sent.IsZero() {
			continue
		}
		if newest.IsZero() {
			newest = m.Sent
		}
		oldest = m.Sent
	}

	if newest.IsZero() {
		return json.RawMessage(`{}`), nil
	}

	data, err := json.Marshal(corpus.DateRange{
		Oldest: oldest.UTC().Format(time.RFC3339),
		Newest: newest.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode date range: %w", err)
	}
	return data, nil
}

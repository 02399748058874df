package reddit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// thing is the API's generic envelope: a type prefix plus its payload.
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingData struct {
	After    string  `json:"after"`
	Before   string  `json:"before"`
	Children []thing `json:"children"`
}

type listingEnvelope struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

func decodeThing(t thing) (Item, error) {
	var (
		item Item
		err  error
	)
	switch t.Kind {
	case "t1":
		c := &Comment{}
		err = json.Unmarshal(t.Data, c)
		item = c
	case "t2":
		u := &User{}
		err = json.Unmarshal(t.Data, u)
		item = u
	case "t3":
		s := &Submission{}
		err = json.Unmarshal(t.Data, s)
		item = s
	case "t4":
		m := &Message{}
		err = json.Unmarshal(t.Data, m)
		item = m
	case "t5":
		s := &Subreddit{}
		err = json.Unmarshal(t.Data, s)
		item = s
	default:
		return &Unknown{Type: t.Kind, Raw: append(json.RawMessage(nil), t.Data...)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.Kind, err)
	}
	return item, nil
}

func decodeListing(raw []byte) ([]Item, string, error) {
	var env listingEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "", fmt.Errorf("decode listing: %w", err)
	}
	items := make([]Item, 0, len(env.Data.Children))
	for _, child := range env.Data.Children {
		item, err := decodeThing(child)
		if err != nil {
			return nil, "", err
		}
		items = append(items, item)
	}
	return items, env.Data.After, nil
}

func unixTime(sec float64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	whole, frac := math.Modf(sec)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

func (s *Submission) UnmarshalJSON(b []byte) error {
	type plain Submission
	var aux struct {
		plain
		CreatedUTC float64 `json:"created_utc"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Submission(aux.plain)
	s.Created = unixTime(aux.CreatedUTC)
	return nil
}

func (s *Subreddit) UnmarshalJSON(b []byte) error {
	type plain Subreddit
	var aux struct {
		plain
		CreatedUTC float64 `json:"created_utc"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Subreddit(aux.plain)
	s.Created = unixTime(aux.CreatedUTC)
	return nil
}

func (m *Message) UnmarshalJSON(b []byte) error {
	type plain Message
	var aux struct {
		plain
		CreatedUTC float64 `json:"created_utc"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*m = Message(aux.plain)
	m.Created = unixTime(aux.CreatedUTC)
	return nil
}

func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var aux struct {
		plain
		CreatedUTC float64 `json:"created_utc"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	u.Created = unixTime(aux.CreatedUTC)
	return nil
}

// UnmarshalJSON decodes the nested reply listing as well. The API sends an
// empty string instead of a listing when there are no replies, and "more"
// stubs inside the tree are dropped.
func (c *Comment) UnmarshalJSON(b []byte) error {
	type plain Comment
	var aux struct {
		plain
		CreatedUTC float64         `json:"created_utc"`
		Replies    json.RawMessage `json:"replies"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*c = Comment(aux.plain)
	c.Created = unixTime(aux.CreatedUTC)
	c.Replies = nil

	raw := bytes.TrimSpace(aux.Replies)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var env listingEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode replies of %s: %w", c.ID, err)
	}
	for _, child := range env.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		reply := &Comment{}
		if err := json.Unmarshal(child.Data, reply); err != nil {
			return err
		}
		c.Replies = append(c.Replies, reply)
	}
	return nil
}

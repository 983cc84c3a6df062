package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NextID returns a fresh record id for the given prefix (contact, company,
// deal, task, act, user, pipe, stage) that does not collide with any id
// already in db.
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	// crypto/rand failed or we collided 10 times in a 40-bit space; fall back
	// to a counter so callers never see an error from id allocation.
	n := len(db.Users) + len(db.Companies) + len(db.Contacts) + len(db.Deals) +
		len(db.Tasks) + len(db.Activities) + len(db.Pipelines) + len(db.Stages)
	return fmt.Sprintf("%s-%d", prefix, n+1)
}

func idExists(db *DB, id string) bool {
	for _, u := range db.Users {
		if u.ID == id {
			return true
		}
	}
	for _, c := range db.Companies {
		if c.ID == id {
			return true
		}
	}
	for _, c := range db.Contacts {
		if c.ID == id {
			return true
		}
	}
	for _, p := range db.Pipelines {
		if p.ID == id {
			return true
		}
	}
	for _, st := range db.Stages {
		if st.ID == id {
			return true
		}
	}
	for _, d := range db.Deals {
		if d.ID == id {
			return true
		}
	}
	for _, t := range db.Tasks {
		if t.ID == id {
			return true
		}
	}
	for _, a := range db.Activities {
		if a.ID == id {
			return true
		}
	}
	return false
}

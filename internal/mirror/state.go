// Package mirror keeps a client-side projection of the server's entity
// set. State transitions are pure: they take the current state plus an
// event and return nothing but mutated in-memory structures, so they can
// be exercised without any I/O. Persistence lives in Store.
package mirror

import (
	"time"

	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
)

// State is the mirrored entity set for one profile.
type State struct {
	Profile   *models.Profile            `json:"profile,omitempty"`
	Documents map[string]models.Document `json:"documents"`
	Folders   map[string]models.Folder   `json:"folders"`
	Tags      map[string]models.Tag      `json:"tags"`
	Reminders map[string]models.Reminder `json:"reminders"`
	Notes     map[string]models.Note     `json:"notes"`
	SyncedAt  time.Time                  `json:"syncedAt"`
}

// NewState returns an empty mirror state.
func NewState() *State {
	return &State{
		Documents: make(map[string]models.Document),
		Folders:   make(map[string]models.Folder),
		Tags:      make(map[string]models.Tag),
		Reminders: make(map[string]models.Reminder),
		Notes:     make(map[string]models.Note),
	}
}

// SetProfile replaces the mirrored profile.
func (s *State) SetProfile(p models.Profile) {
	s.Profile = &p
}

// UpsertDocument inserts or replaces one document. Soft-deleted
// documents are dropped from the mirror rather than kept.
func (s *State) UpsertDocument(d models.Document) {
	if d.DeletedAt != nil {
		delete(s.Documents, d.ID)
		return
	}
	s.Documents[d.ID] = d
}

// RemoveDocument drops a document by id.
func (s *State) RemoveDocument(id string) {
	delete(s.Documents, id)
}

// UpsertFolder inserts or replaces one folder.
func (s *State) UpsertFolder(f models.Folder) {
	s.Folders[f.ID] = f
}

// RemoveFolder drops a folder and reparents mirrored children to root,
// matching the server's delete semantics for documents. Child folders
// cascade like the server schema does.
func (s *State) RemoveFolder(id string) {
	delete(s.Folders, id)

	for childID, child := range s.Folders {
		if child.ParentID != nil && *child.ParentID == id {
			s.RemoveFolder(childID)
		}
	}
	for docID, doc := range s.Documents {
		if doc.FolderID != nil && *doc.FolderID == id {
			doc.FolderID = nil
			s.Documents[docID] = doc
		}
	}
}

// UpsertTag inserts or replaces one tag.
func (s *State) UpsertTag(t models.Tag) {
	s.Tags[t.ID] = t
}

// RemoveTag drops a tag and strips it from mirrored documents.
func (s *State) RemoveTag(id string) {
	delete(s.Tags, id)

	for docID, doc := range s.Documents {
		kept := doc.Tags[:0]
		for _, tag := range doc.Tags {
			if tag.ID != id {
				kept = append(kept, tag)
			}
		}
		doc.Tags = kept
		s.Documents[docID] = doc
	}
}

// UpsertReminder inserts or replaces one reminder.
func (s *State) UpsertReminder(r models.Reminder) {
	s.Reminders[r.ID] = r
}

// RemoveReminder drops a reminder by id.
func (s *State) RemoveReminder(id string) {
	delete(s.Reminders, id)
}

// UpsertNote inserts or replaces one note.
func (s *State) UpsertNote(n models.Note) {
	s.Notes[n.ID] = n
}

// RemoveNote drops a note by id.
func (s *State) RemoveNote(id string) {
	delete(s.Notes, id)
}

// Replace swaps in a full server snapshot, discarding local entries that
// the server no longer has.
func (s *State) Replace(profile *models.Profile, docs []models.Document, folders []models.Folder, tags []models.Tag, reminders []models.Reminder, notes []models.Note, at time.Time) {
	s.Profile = profile
	s.Documents = make(map[string]models.Document, len(docs))
	s.Folders = make(map[string]models.Folder, len(folders))
	s.Tags = make(map[string]models.Tag, len(tags))
	s.Reminders = make(map[string]models.Reminder, len(reminders))
	s.Notes = make(map[string]models.Note, len(notes))

	for _, d := range docs {
		s.UpsertDocument(d)
	}
	for _, f := range folders {
		s.Folders[f.ID] = f
	}
	for _, t := range tags {
		s.Tags[t.ID] = t
	}
	for _, r := range reminders {
		s.Reminders[r.ID] = r
	}
	for _, n := range notes {
		s.Notes[n.ID] = n
	}
	s.SyncedAt = at
}

// ApplySnapshot replaces the mirror with a server sync payload.
func (s *State) ApplySnapshot(snap *services.SyncSnapshot) {
	s.Replace(snap.Profile, snap.Documents, snap.Folders, snap.Tags, snap.Reminders, snap.Notes, snap.SyncedAt)
}

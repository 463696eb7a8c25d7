package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// The fakes below are in-memory stand-ins for the postgres repositories,
// scoped the same way: every read filters on profile id.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type idSeq struct {
	prefix string
	n      int
}

func (s *idSeq) next() string {
	s.n++
	return fmt.Sprintf("%s-%d", s.prefix, s.n)
}

type fakeProfileRepo struct {
	profiles   map[string]*models.Profile // keyed by user id
	ids        idSeq
	createErr  error
	storageLog []int64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles: make(map[string]*models.Profile),
		ids:      idSeq{prefix: "profile"},
	}
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.profiles[profile.UserID]; ok {
		return domain.ErrConflict
	}
	profile.ID = r.ids.next()
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	p, ok := r.profiles[profile.UserID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *profile
	cp.StorageUsed = p.StorageUsed
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) AddStorageUsed(ctx context.Context, profileID string, delta int64) error {
	r.storageLog = append(r.storageLog, delta)
	for _, p := range r.profiles {
		if p.ID == profileID {
			p.StorageUsed += delta
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeDocumentRepo struct {
	docs map[string]*models.Document
	ids  idSeq
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs: make(map[string]*models.Document),
		ids:  idSeq{prefix: "doc"},
	}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	doc.ID = r.ids.next()
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id, profileID string) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok || d.ProfileID != profileID || d.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context, profileID string, filter *models.DocumentFilter) ([]models.Document, int, error) {
	all, _ := r.ListAll(ctx, profileID)
	total := len(all)

	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeDocumentRepo) ListAll(ctx context.Context, profileID string) ([]models.Document, error) {
	var out []models.Document
	for i := 1; i <= r.ids.n; i++ {
		d, ok := r.docs[fmt.Sprintf("doc-%d", i)]
		if ok && d.ProfileID == profileID && d.DeletedAt == nil {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *models.Document) error {
	d, ok := r.docs[doc.ID]
	if !ok || d.ProfileID != doc.ProfileID || d.DeletedAt != nil {
		return domain.ErrNotFound
	}
	cp := *doc
	cp.Tags = d.Tags
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) SetTags(ctx context.Context, docID string, tagIDs []string) error {
	d, ok := r.docs[docID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Tags = make([]models.Tag, len(tagIDs))
	for i, id := range tagIDs {
		d.Tags[i] = models.Tag{ID: id}
	}
	return nil
}

func (r *fakeDocumentRepo) SoftDelete(ctx context.Context, ids []string, profileID string, at time.Time) error {
	for _, id := range ids {
		d, ok := r.docs[id]
		if !ok || d.ProfileID != profileID {
			return domain.ErrNotFound
		}
		deletedAt := at
		d.DeletedAt = &deletedAt
	}
	return nil
}

type fakeFolderRepo struct {
	folders map[string]*models.Folder
	ids     idSeq
	// failNames injects create failures for restore tests
	failNames map[string]bool
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		folders:   make(map[string]*models.Folder),
		ids:       idSeq{prefix: "folder"},
		failNames: make(map[string]bool),
	}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if r.failNames[folder.Name] {
		return fmt.Errorf("insert failed")
	}
	folder.ID = r.ids.next()
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, profileID string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) List(ctx context.Context, profileID string, parentID *string, rootOnly bool) ([]models.Folder, error) {
	all, _ := r.ListAll(ctx, profileID)
	var out []models.Folder
	for _, f := range all {
		if rootOnly && f.ParentID != nil {
			continue
		}
		if parentID != nil && (f.ParentID == nil || *f.ParentID != *parentID) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFolderRepo) ListAll(ctx context.Context, profileID string) ([]models.Folder, error) {
	var out []models.Folder
	for i := 1; i <= r.ids.n; i++ {
		f, ok := r.folders[fmt.Sprintf("folder-%d", i)]
		if ok && f.ProfileID == profileID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	f, ok := r.folders[folder.ID]
	if !ok || f.ProfileID != folder.ProfileID {
		return domain.ErrNotFound
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, profileID string) error {
	f, ok := r.folders[id]
	if !ok || f.ProfileID != profileID {
		return domain.ErrNotFound
	}
	delete(r.folders, id)
	return nil
}

type fakeTagRepo struct {
	tags      map[string]*models.Tag
	ids       idSeq
	failNames map[string]bool
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		tags:      make(map[string]*models.Tag),
		ids:       idSeq{prefix: "tag"},
		failNames: make(map[string]bool),
	}
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *models.Tag) error {
	if r.failNames[tag.Name] {
		return fmt.Errorf("insert failed")
	}
	for _, t := range r.tags {
		if t.ProfileID == tag.ProfileID && t.Name == tag.Name {
			return &domain.ConflictError{
				Message:      "tag already exists",
				ResourceType: "tag",
				ResourceID:   t.ID,
			}
		}
	}
	tag.ID = r.ids.next()
	cp := *tag
	r.tags[tag.ID] = &cp
	return nil
}

func (r *fakeTagRepo) GetByID(ctx context.Context, id, profileID string) (*models.Tag, error) {
	t, ok := r.tags[id]
	if !ok || t.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTagRepo) List(ctx context.Context, profileID string) ([]models.Tag, error) {
	var out []models.Tag
	for i := 1; i <= r.ids.n; i++ {
		t, ok := r.tags[fmt.Sprintf("tag-%d", i)]
		if ok && t.ProfileID == profileID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) Update(ctx context.Context, tag *models.Tag) error {
	t, ok := r.tags[tag.ID]
	if !ok || t.ProfileID != tag.ProfileID {
		return domain.ErrNotFound
	}
	cp := *tag
	r.tags[tag.ID] = &cp
	return nil
}

func (r *fakeTagRepo) Delete(ctx context.Context, id, profileID string) error {
	t, ok := r.tags[id]
	if !ok || t.ProfileID != profileID {
		return domain.ErrNotFound
	}
	delete(r.tags, id)
	return nil
}

type fakeReminderRepo struct {
	reminders map[string]*models.Reminder
	ids       idSeq
	failNames map[string]bool
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{
		reminders: make(map[string]*models.Reminder),
		ids:       idSeq{prefix: "reminder"},
		failNames: make(map[string]bool),
	}
}

func (r *fakeReminderRepo) Create(ctx context.Context, reminder *models.Reminder) error {
	if r.failNames[reminder.Title] {
		return fmt.Errorf("insert failed")
	}
	reminder.ID = r.ids.next()
	cp := *reminder
	r.reminders[reminder.ID] = &cp
	return nil
}

func (r *fakeReminderRepo) GetByID(ctx context.Context, id, profileID string) (*models.Reminder, error) {
	rem, ok := r.reminders[id]
	if !ok || rem.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}
	cp := *rem
	return &cp, nil
}

func (r *fakeReminderRepo) List(ctx context.Context, profileID string, filter *models.ReminderFilter) ([]models.Reminder, int, error) {
	all, _ := r.ListAll(ctx, profileID)
	return all, len(all), nil
}

func (r *fakeReminderRepo) ListAll(ctx context.Context, profileID string) ([]models.Reminder, error) {
	var out []models.Reminder
	for i := 1; i <= r.ids.n; i++ {
		rem, ok := r.reminders[fmt.Sprintf("reminder-%d", i)]
		if ok && rem.ProfileID == profileID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) Update(ctx context.Context, reminder *models.Reminder) error {
	rem, ok := r.reminders[reminder.ID]
	if !ok || rem.ProfileID != reminder.ProfileID {
		return domain.ErrNotFound
	}
	cp := *reminder
	r.reminders[reminder.ID] = &cp
	return nil
}

func (r *fakeReminderRepo) Delete(ctx context.Context, id, profileID string) error {
	rem, ok := r.reminders[id]
	if !ok || rem.ProfileID != profileID {
		return domain.ErrNotFound
	}
	delete(r.reminders, id)
	return nil
}

type fakeNoteRepo struct {
	notes map[string]*models.Note
	ids   idSeq
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		notes: make(map[string]*models.Note),
		ids:   idSeq{prefix: "note"},
	}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *models.Note) error {
	note.ID = r.ids.next()
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, id, profileID string) (*models.Note, error) {
	n, ok := r.notes[id]
	if !ok || n.ProfileID != profileID {
		return nil, domain.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) List(ctx context.Context, profileID string, filter *models.NoteFilter) ([]models.Note, error) {
	return r.ListAll(ctx, profileID)
}

func (r *fakeNoteRepo) ListAll(ctx context.Context, profileID string) ([]models.Note, error) {
	var out []models.Note
	for i := 1; i <= r.ids.n; i++ {
		n, ok := r.notes[fmt.Sprintf("note-%d", i)]
		if ok && n.ProfileID == profileID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *models.Note) error {
	n, ok := r.notes[note.ID]
	if !ok || n.ProfileID != note.ProfileID {
		return domain.ErrNotFound
	}
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id, profileID string) error {
	n, ok := r.notes[id]
	if !ok || n.ProfileID != profileID {
		return domain.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

type fakeBackupRepo struct {
	backups map[string]*models.Backup
	ids     idSeq
}

func newFakeBackupRepo() *fakeBackupRepo {
	return &fakeBackupRepo{
		backups: make(map[string]*models.Backup),
		ids:     idSeq{prefix: "backup"},
	}
}

func (r *fakeBackupRepo) Create(ctx context.Context, backup *models.Backup) error {
	backup.ID = r.ids.next()
	backup.CreatedAt = time.Now()
	cp := *backup
	r.backups[backup.ID] = &cp
	return nil
}

func (r *fakeBackupRepo) List(ctx context.Context, profileID string, limit int) ([]models.Backup, error) {
	var out []models.Backup
	for i := r.ids.n; i >= 1 && len(out) < limit; i-- {
		b, ok := r.backups[fmt.Sprintf("backup-%d", i)]
		if ok && b.ProfileID == profileID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBackupRepo) UpdateStatus(ctx context.Context, backup *models.Backup) error {
	b, ok := r.backups[backup.ID]
	if !ok || b.ProfileID != backup.ProfileID {
		return domain.ErrNotFound
	}
	cp := *backup
	r.backups[backup.ID] = &cp
	return nil
}

func (r *fakeBackupRepo) Delete(ctx context.Context, id, profileID string) error {
	b, ok := r.backups[id]
	if !ok || b.ProfileID != profileID {
		return domain.ErrNotFound
	}
	delete(r.backups, id)
	return nil
}

type fakeLinkRepo struct {
	links map[string]*models.SharedLink
	ids   idSeq
	// docOwner maps document id to owning profile id so Delete can be
	// scoped like the real repository's join.
	docOwner map[string]string
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{
		links:    make(map[string]*models.SharedLink),
		ids:      idSeq{prefix: "link"},
		docOwner: make(map[string]string),
	}
}

func (r *fakeLinkRepo) Create(ctx context.Context, link *models.SharedLink) error {
	link.ID = r.ids.next()
	link.CreatedAt = time.Now()
	cp := *link
	r.links[link.ID] = &cp
	return nil
}

func (r *fakeLinkRepo) ListByDocument(ctx context.Context, documentID string) ([]models.SharedLink, error) {
	var out []models.SharedLink
	for i := 1; i <= r.ids.n; i++ {
		l, ok := r.links[fmt.Sprintf("link-%d", i)]
		if ok && l.DocumentID == documentID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) Delete(ctx context.Context, id, profileID string) error {
	l, ok := r.links[id]
	if !ok || r.docOwner[l.DocumentID] != profileID {
		return domain.ErrNotFound
	}
	delete(r.links, id)
	return nil
}

type fakeAuditRepo struct {
	entries []models.AuditLog
}

func (r *fakeAuditRepo) Append(ctx context.Context, entry *models.AuditLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

type fakeAnalyticsRepo struct {
	counts map[string]int
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{counts: make(map[string]int)}
}

func (r *fakeAnalyticsRepo) Increment(ctx context.Context, profileID string, date time.Time, event string) error {
	r.counts[event]++
	return nil
}

// fakeTxManager runs the function directly; the fakes have no
// transactional state to roll back.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

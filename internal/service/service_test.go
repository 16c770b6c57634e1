package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"questhunt/internal/model"
	"questhunt/internal/repository/memory"
)

// fakePhotoStore keeps uploaded blobs in a map so tests can assert on
// uploads, deletions and orphan cleanup.
type fakePhotoStore struct {
	mu      sync.Mutex
	objects map[string]string
	deleted []string
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{objects: make(map[string]string)}
}

func (f *fakePhotoStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = contentType
	return "https://photos.test/" + key, nil
}

func (f *fakePhotoStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakePhotoStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeLeaderboardCache mimics the redis cache: Set stores, Invalidate
// clears, Get returns nil after invalidation.
type fakeLeaderboardCache struct {
	mu          sync.Mutex
	entries     []model.LeaderboardEntry
	invalidated int
}

func (f *fakeLeaderboardCache) Get(ctx context.Context) ([]model.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}

func (f *fakeLeaderboardCache) Set(ctx context.Context, entries []model.LeaderboardEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = entries
	return nil
}

func (f *fakeLeaderboardCache) Invalidate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
	f.invalidated++
	return nil
}

// env wires every service against the in-memory repositories and a fake
// clock so temporal behavior is fully controlled.
type env struct {
	teams     *memory.TeamRepo
	tasks     *memory.TaskRepo
	subs      *memory.SubmissionRepo
	quests    *memory.SideQuestRepo
	questSubs *memory.SideQuestSubmissionRepo

	clock  *clockwork.FakeClock
	photos *fakePhotoStore
	board  *fakeLeaderboardCache

	auth        *AuthService
	config      *ConfigService
	teamSvc     *TeamService
	taskSvc     *TaskService
	submission  *SubmissionService
	sideQuest   *SideQuestService
	leaderboard *LeaderboardService
	stats       *StatsService
}

const maxTestUpload = 10 << 20

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		teams:     memory.NewTeamRepo(),
		tasks:     memory.NewTaskRepo(),
		subs:      memory.NewSubmissionRepo(),
		quests:    memory.NewSideQuestRepo(),
		questSubs: memory.NewSideQuestSubmissionRepo(),
		clock:     clockwork.NewFakeClockAt(time.Date(2026, 6, 12, 9, 0, 0, 0, time.UTC)),
		photos:    newFakePhotoStore(),
		board:     &fakeLeaderboardCache{},
	}

	e.config = NewConfigService(memory.NewGameConfigRepo())
	e.auth = NewAuthService(e.teams, "test-secret", "setup-key", e.clock)
	e.teamSvc = NewTeamService(e.teams, e.tasks, e.subs, e.questSubs, e.config, e.board, e.clock)
	e.taskSvc = NewTaskService(e.tasks, e.teams, e.subs, e.config, e.board, e.clock)
	e.submission = NewSubmissionService(e.subs, e.tasks, e.teams, e.config, e.photos, e.board, e.clock, maxTestUpload)
	e.sideQuest = NewSideQuestService(e.quests, e.questSubs, e.teams, e.photos, e.clock, maxTestUpload)
	e.leaderboard = NewLeaderboardService(e.subs, e.tasks, e.teams, e.config, e.board)
	e.stats = NewStatsService(e.teams, e.tasks, e.subs)
	return e
}

func (e *env) addTask(t *testing.T, title string, points, order int) *model.Task {
	t.Helper()
	task := &model.Task{
		Title:        title,
		Description:  "find " + title,
		LocationHint: "somewhere near " + title,
		DetailedHint: "right behind " + title,
		Points:       points,
		Order:        order,
		IsActive:     true,
	}
	if err := e.tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func (e *env) addTeam(t *testing.T, name string) *model.Team {
	t.Helper()
	team, err := e.teamSvc.Create(context.Background(), name, "hunt"+name)
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}
	return team
}

func (e *env) addAdmin(t *testing.T) *model.Team {
	t.Helper()
	resp, err := e.auth.AdminSetup(context.Background(), "organizers", "adminpass", "setup-key")
	if err != nil {
		t.Fatalf("admin setup: %v", err)
	}
	admin, err := e.teams.GetByID(context.Background(), resp.Team.ID)
	if err != nil {
		t.Fatalf("load admin: %v", err)
	}
	return admin
}

// upload pushes a valid jpeg for the team/task pair.
func (e *env) upload(t *testing.T, teamID, taskID string) *model.Submission {
	t.Helper()
	sub, err := e.submission.UploadPhoto(context.Background(), teamID, taskID, "image/jpeg", 2048, photoBody())
	if err != nil {
		t.Fatalf("upload photo: %v", err)
	}
	return sub
}

func photoBody() io.Reader {
	return &fixedReader{}
}

type fixedReader struct{ done bool }

func (r *fixedReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	r.done = true
	n := copy(p, []byte("jpegbytes"))
	return n, nil
}

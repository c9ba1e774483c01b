package service

import (
	"testing"
	"time"

	"go-confession-board/internal/model"
	"go-confession-board/internal/repository"
	"go-confession-board/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(t *testing.T) *PostService {
	fileService, err := NewFileService()
	require.NoError(t, err, "Failed to prepare upload directories")

	return NewPostService(
		repository.NewPostRepository(),
		repository.NewConfessionRepository(),
		repository.NewCommentRepository(),
		repository.NewGroupMemberRepository(),
		repository.NewRuleRepository(),
		repository.NewProfileRepository(),
		fileService,
	)
}

func createTestRule(t *testing.T, groupSvc *GroupService, groupID, userID uint, title string, fine uint) *model.Rule {
	rule, err := groupSvc.CreateRule(groupID, userID, CreateRuleRequest{Title: title, FineAmount: fine})
	require.NoError(t, err)
	return rule
}

func TestPostService_CreatePost(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "postOwner")
	outsider := createTestUser(t, "postOutsider")
	group := createTestGroup(t, groupSvc, owner.ID, "Post Test")
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "遅刻", 500)

	post, err := postSvc.CreatePost(owner.ID, CreatePostRequest{
		GroupID: group.ID,
		RuleID:  rule.ID,
		Content: "また遅刻した",
	}, nil)
	require.NoError(t, err)
	assert.True(t, post.ID > 0)
	assert.Equal(t, "また遅刻した", post.Content)

	// non-members cannot post
	_, err = postSvc.CreatePost(outsider.ID, CreatePostRequest{
		GroupID: group.ID,
		RuleID:  rule.ID,
		Content: "x",
	}, nil)
	assert.ErrorIs(t, err, ErrNotMember)

	// the rule must belong to the target group
	otherGroup := createTestGroup(t, groupSvc, owner.ID, "Other Group")
	_, err = postSvc.CreatePost(owner.ID, CreatePostRequest{
		GroupID: otherGroup.ID,
		RuleID:  rule.ID,
		Content: "x",
	}, nil)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "editOwner")
	member := createTestUser(t, "editMember")
	group := createTestGroup(t, groupSvc, owner.ID, "Edit Test")
	require.NoError(t, groupSvc.JoinGroup(member.ID, JoinGroupRequest{GroupID: group.ID}))
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "皿洗いサボり", 300)

	post, err := postSvc.CreatePost(owner.ID, CreatePostRequest{
		GroupID: group.ID, RuleID: rule.ID, Content: "before",
	}, nil)
	require.NoError(t, err)

	// only the author may edit
	err = postSvc.UpdatePost(post.ID, member.ID, UpdatePostRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrNotAuthor)

	err = postSvc.UpdatePost(post.ID, owner.ID, UpdatePostRequest{Content: "after"})
	require.NoError(t, err)

	postRepo := repository.NewPostRepository()
	updated, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)

	// only the author may delete
	err = postSvc.DeletePost(post.ID, member.ID)
	assert.ErrorIs(t, err, ErrNotAuthor)

	err = postSvc.DeletePost(post.ID, owner.ID)
	require.NoError(t, err)

	gone, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPostService_Confess(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "confessOwner")
	member := createTestUser(t, "confessMember")
	group := createTestGroup(t, groupSvc, owner.ID, "Confess Test")
	require.NoError(t, groupSvc.JoinGroup(member.ID, JoinGroupRequest{GroupID: group.ID}))
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "遅刻", 500)

	post, err := postSvc.CreatePost(owner.ID, CreatePostRequest{
		GroupID: group.ID, RuleID: rule.ID, Content: "誰か遅刻した",
	}, nil)
	require.NoError(t, err)

	// the author cannot confess to their own post
	err = postSvc.Confess(post.ID, owner.ID)
	assert.ErrorIs(t, err, ErrOwnPostConfession)

	err = postSvc.Confess(post.ID, member.ID)
	require.NoError(t, err)

	// the system comment is inserted with the confession
	comments, err := postSvc.ListComments(post.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsConfession)
	assert.Equal(t, "私がやりました", comments[0].Content)

	// confessing twice is refused
	err = postSvc.Confess(post.ID, member.ID)
	assert.ErrorIs(t, err, ErrAlreadyConfessed)
}

func TestPostService_ConfessWindow(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "windowOwner")
	member := createTestUser(t, "windowMember")
	group := createTestGroup(t, groupSvc, owner.ID, "Window Test")
	require.NoError(t, groupSvc.JoinGroup(member.ID, JoinGroupRequest{GroupID: group.ID}))
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "遅刻", 500)

	// a post created past the window, inserted directly with an old timestamp
	old := &model.Post{
		GroupID:   group.ID,
		UserID:    owner.ID,
		RuleID:    rule.ID,
		Content:   "古い投稿",
		CreatedAt: time.Now().Add(-ConfessionWindow - time.Hour),
	}
	require.NoError(t, db.DB.Create(old).Error)

	err := postSvc.Confess(old.ID, member.ID)
	assert.ErrorIs(t, err, ErrConfessionExpired)

	// no confession row was written
	confessionRepo := repository.NewConfessionRepository()
	existing, err := confessionRepo.FindByPostAndUser(old.ID, member.ID)
	require.NoError(t, err)
	assert.Nil(t, existing)
}

func TestPostService_ListPostsStates(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "stateOwner")
	member := createTestUser(t, "stateMember")
	other := createTestUser(t, "stateOther")
	group := createTestGroup(t, groupSvc, owner.ID, "State Test")
	require.NoError(t, groupSvc.JoinGroup(member.ID, JoinGroupRequest{GroupID: group.ID}))
	require.NoError(t, groupSvc.JoinGroup(other.ID, JoinGroupRequest{GroupID: group.ID}))
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "遅刻", 500)

	post, err := postSvc.CreatePost(owner.ID, CreatePostRequest{
		GroupID: group.ID, RuleID: rule.ID, Content: "state check",
	}, nil)
	require.NoError(t, err)

	// the author sees their own post as self
	views, err := postSvc.ListPosts(owner.ID, group.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, ConfessionSelf, views[0].ConfessionState)

	// other members see it open inside the window
	views, err = postSvc.ListPosts(member.ID, group.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, ConfessionOpen, views[0].ConfessionState)

	// the state is per viewer: the confessor sees confessed, another
	// member still sees the post as open
	require.NoError(t, postSvc.Confess(post.ID, member.ID))
	views, err = postSvc.ListPosts(member.ID, group.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, ConfessionConfessed, views[0].ConfessionState)
	assert.Equal(t, int64(1), views[0].CommentCount)

	views, err = postSvc.ListPosts(other.ID, group.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, ConfessionOpen, views[0].ConfessionState)

	// and an open post accepts that member's own confession
	require.NoError(t, postSvc.Confess(post.ID, other.ID))
	views, err = postSvc.ListPosts(other.ID, group.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, ConfessionConfessed, views[0].ConfessionState)
}

func TestPostService_ListPostsMembershipScope(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "scopeOwner")
	outsider := createTestUser(t, "scopeOutsider")
	group := createTestGroup(t, groupSvc, owner.ID, "Scope Test")
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "遅刻", 500)

	post, err := postSvc.CreatePost(owner.ID, CreatePostRequest{
		GroupID: group.ID, RuleID: rule.ID, Content: "members only",
	}, nil)
	require.NoError(t, err)

	// the home feed only spans groups the viewer belongs to
	views, err := postSvc.ListPosts(outsider.ID, 0, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, views)

	views, err = postSvc.ListPosts(owner.ID, 0, 10, 0)
	require.NoError(t, err)
	assert.Len(t, views, 1)

	// the group-scoped feed refuses non-members outright
	_, err = postSvc.ListPosts(outsider.ID, group.ID, 10, 0)
	assert.ErrorIs(t, err, ErrNotMember)

	// comments are members-only too, both reading and writing
	_, err = postSvc.ListComments(post.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotMember)
	_, err = postSvc.AddComment(post.ID, outsider.ID, AddCommentRequest{Content: "x"})
	assert.ErrorIs(t, err, ErrNotMember)

	// as are confessions
	err = postSvc.Confess(post.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestConfessionState(t *testing.T) {
	now := time.Now()
	fresh := now.Add(-time.Hour)
	stale := now.Add(-ConfessionWindow - time.Hour)

	tests := []struct {
		name string
		post model.Post
		want string
	}{
		{
			name: "own post",
			post: model.Post{UserID: 2, CreatedAt: fresh},
			want: ConfessionSelf,
		},
		{
			name: "open inside the window",
			post: model.Post{UserID: 1, CreatedAt: fresh},
			want: ConfessionOpen,
		},
		{
			name: "someone else's confession leaves it open for the viewer",
			post: model.Post{UserID: 1, CreatedAt: fresh,
				Confessions: []model.Confession{{UserID: 3}}},
			want: ConfessionOpen,
		},
		{
			name: "viewer's own confession",
			post: model.Post{UserID: 1, CreatedAt: fresh,
				Confessions: []model.Confession{{UserID: 3}, {UserID: 2}}},
			want: ConfessionConfessed,
		},
		{
			name: "expired",
			post: model.Post{UserID: 1, CreatedAt: stale},
			want: ConfessionExpired,
		},
		{
			name: "viewer's confession wins over expiry",
			post: model.Post{UserID: 1, CreatedAt: stale,
				Confessions: []model.Confession{{UserID: 2}}},
			want: ConfessionConfessed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confessionState(&tt.post, 2, now); got != tt.want {
				t.Errorf("confessionState() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostService_ListPostsPaging(t *testing.T) {
	setupTestDB(t)
	groupSvc := newTestGroupService()
	postSvc := newTestPostService(t)
	owner := createTestUser(t, "pageOwner")
	group := createTestGroup(t, groupSvc, owner.ID, "Page Test")
	rule := createTestRule(t, groupSvc, group.ID, owner.ID, "遅刻", 500)

	for i := 0; i < 12; i++ {
		_, err := postSvc.CreatePost(owner.ID, CreatePostRequest{
			GroupID: group.ID, RuleID: rule.ID, Content: "entry",
		}, nil)
		require.NoError(t, err)
	}

	first, err := postSvc.ListPosts(owner.ID, group.ID, DefaultPageSize, 0)
	require.NoError(t, err)
	assert.Len(t, first, DefaultPageSize)

	second, err := postSvc.ListPosts(owner.ID, group.ID, DefaultPageSize, DefaultPageSize)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	// pages do not overlap
	seen := make(map[uint]bool)
	for _, v := range first {
		seen[v.ID] = true
	}
	for _, v := range second {
		assert.False(t, seen[v.ID], "post %d appeared on both pages", v.ID)
	}
}

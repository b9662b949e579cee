package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yilin/internal/models"
	"yilin/internal/utils"
)

// CommentRepository mediates every read and write on the comment collection.
// Each operation is one query or a short query chain; consistency of the
// vote/flag mutations rests on the store's row-level guarantees, nothing here
// coordinates concurrent callers beyond that.
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository wires the repository to an explicitly passed store
// handle (no ambient globals).
func NewCommentRepository(database *gorm.DB) *CommentRepository {
	return &CommentRepository{db: database}
}

// CreateCommentInput carries the fields a citizen submits for a new comment.
// Required-field checks happen in the model layer, not here.
type CreateCommentInput struct {
	Text      string `json:"text"`
	AuthorID  uint   `json:"author_id"`
	Context   string `json:"context"`   // e.g. "proposal"
	Reference string `json:"reference"` // e.g. "p42"
}

// SubjectQuery identifies the subject under discussion.
type SubjectQuery struct {
	Context   string `json:"context"`
	Reference string `json:"reference"`
}

// ReplyInput carries the fields for a reply to an existing comment.
type ReplyInput struct {
	Text     string `json:"text"`
	AuthorID uint   `json:"author_id"`
}

// ListAll returns every comment in the collection, authors left unresolved.
// Reply and vote counts are projected on so the listing is usable on its own.
func (r *CommentRepository) ListAll(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	if err := r.fillReplyCounts(ctx, comments); err != nil {
		return nil, err
	}
	if err := r.fillVoteTallies(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Create persists a new comment and hands it back with the author resolved to
// its summary fields: save first, then the dependent populate read.
func (r *CommentRepository) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	comment := models.Comment{
		Cid:       utils.RandStringBytesMaskImpr(8),
		Text:      in.Text,
		AuthorID:  in.AuthorID,
		Context:   in.Context,
		Reference: in.Reference,
	}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return r.load(ctx, comment.ID)
}

// GetFor returns the comments attached to one subject, most recent first,
// authors resolved and replies preloaded in conversation order.
func (r *CommentRepository) GetFor(ctx context.Context, q SubjectQuery) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", replyOrder).
		Preload("Replies.Author").
		Preload("Flags").
		Where("context = ? AND reference = ?", q.Context, q.Reference).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for %s/%s: %w", q.Context, q.Reference, err)
	}
	for i := range comments {
		comments[i].ReplyCount = len(comments[i].Replies)
	}
	if err := r.fillVoteTallies(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Reply appends a reply to the parent comment's reply sequence and persists
// it. A persistence failure fails the whole call; no reply object comes back
// without its row.
func (r *CommentRepository) Reply(ctx context.Context, cid string, in ReplyInput) (*models.Reply, error) {
	comment, err := r.getByCid(ctx, cid)
	if err != nil {
		return nil, err
	}

	reply := models.Reply{
		Rid:       utils.RandStringBytesMaskImpr(8),
		CommentID: comment.ID,
		Text:      in.Text,
		AuthorID:  in.AuthorID,
	}
	if err := r.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, fmt.Errorf("failed to append reply: %w", err)
	}

	// 回读并解析作者信息
	var out models.Reply
	if err := r.db.WithContext(ctx).Preload("Author").First(&out, reply.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load reply: %w", err)
	}
	return &out, nil
}

// Upvote registers a positive vote by the citizen and returns the updated
// comment.
func (r *CommentRepository) Upvote(ctx context.Context, cid string, citizenID uint) (*models.Comment, error) {
	return r.vote(ctx, cid, citizenID, 1)
}

// Downvote registers a negative vote by the citizen and returns the updated
// comment.
func (r *CommentRepository) Downvote(ctx context.Context, cid string, citizenID uint) (*models.Comment, error) {
	return r.vote(ctx, cid, citizenID, -1)
}

// vote holds the shared up/down mechanics. A citizen has at most one vote row
// per comment: voting the same side again changes nothing, voting the other
// side flips the existing row. The check-then-write runs in one transaction.
func (r *CommentRepository) vote(ctx context.Context, cid string, citizenID uint, value int) (*models.Comment, error) {
	comment, err := r.getByCid(ctx, cid)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("comment_id = ? AND citizen_id = ?", comment.ID, citizenID).First(&existing).Error
		switch {
		case err == nil:
			if existing.Value == value {
				// 已投过同方向的票，保持不变
				return nil
			}
			// 换边：改写已有的那一票，而不是叠加第二票
			return tx.Model(&existing).UpdateColumn("value", value).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Vote{
				CommentID: comment.ID,
				CitizenID: citizenID,
				Value:     value,
			}).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register vote: %w", err)
	}

	return r.load(ctx, comment.ID)
}

// Flag records a spam report by the citizen on the comment. Flagging the same
// comment twice is a no-op.
func (r *CommentRepository) Flag(ctx context.Context, cid string, citizenID uint) (*models.Comment, error) {
	comment, err := r.getByCid(ctx, cid)
	if err != nil {
		return nil, err
	}

	flag := models.Flag{
		CommentID: comment.ID,
		CitizenID: citizenID,
		Reason:    models.FlagReasonSpam,
	}
	err = r.db.WithContext(ctx).
		Where("comment_id = ? AND citizen_id = ?", comment.ID, citizenID).
		FirstOrCreate(&flag).Error
	if err != nil {
		return nil, fmt.Errorf("failed to flag comment: %w", err)
	}

	return r.load(ctx, comment.ID)
}

// Unflag clears the citizen's report from the comment, if any.
func (r *CommentRepository) Unflag(ctx context.Context, cid string, citizenID uint) (*models.Comment, error) {
	comment, err := r.getByCid(ctx, cid)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("comment_id = ? AND citizen_id = ?", comment.ID, citizenID).
		Delete(&models.Flag{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to unflag comment: %w", err)
	}

	return r.load(ctx, comment.ID)
}

// getByCid fetches the bare comment row by its public id.
func (r *CommentRepository) getByCid(ctx context.Context, cid string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("cid = ?", cid).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load comment %s: %w", cid, err)
	}
	return &comment, nil
}

// load returns the hydrated view of one comment: author summary, ordered
// replies with their authors, flags, and the projected tallies.
func (r *CommentRepository) load(ctx context.Context, id uint) (*models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", replyOrder).
		Preload("Replies.Author").
		Preload("Flags").
		Where("id = ?", id).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	if len(comments) == 0 {
		return nil, ErrCommentNotFound
	}
	comments[0].ReplyCount = len(comments[0].Replies)
	if err := r.fillVoteTallies(ctx, comments); err != nil {
		return nil, err
	}
	return &comments[0], nil
}

func replyOrder(db *gorm.DB) *gorm.DB {
	return db.Order("replies.created_at ASC")
}

// fillVoteTallies batch-counts the vote rows for a set of comments and
// projects the up/down tallies onto them.
func (r *CommentRepository) fillVoteTallies(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	// 收集所有评论ID
	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	// 批量统计票数
	type tallyResult struct {
		CommentID uint
		Value     int
		Count     int
	}
	var results []tallyResult
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("comment_id, value, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id, value").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("failed to count votes: %w", err)
	}

	// 建立映射
	upvotes := make(map[uint]int)
	downvotes := make(map[uint]int)
	for _, res := range results {
		if res.Value > 0 {
			upvotes[res.CommentID] = res.Count
		} else {
			downvotes[res.CommentID] = res.Count
		}
	}

	// 填充到评论
	for i := range comments {
		comments[i].Upvotes = upvotes[comments[i].ID]
		comments[i].Downvotes = downvotes[comments[i].ID]
	}
	return nil
}

// fillReplyCounts batch-counts replies for comments loaded without their
// reply sequences.
func (r *CommentRepository) fillReplyCounts(ctx context.Context, comments []models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	commentIDs := make([]uint, len(comments))
	for i, c := range comments {
		commentIDs[i] = c.ID
	}

	type countResult struct {
		CommentID uint
		Count     int
	}
	var results []countResult
	err := r.db.WithContext(ctx).Model(&models.Reply{}).
		Select("comment_id, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("failed to count replies: %w", err)
	}

	countMap := make(map[uint]int)
	for _, res := range results {
		countMap[res.CommentID] = res.Count
	}

	for i := range comments {
		comments[i].ReplyCount = countMap[comments[i].ID]
	}
	return nil
}

package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/qa-resolver/internal/logger"
	"github.com/sbilibin2017/qa-resolver/internal/models"
	"github.com/sbilibin2017/qa-resolver/internal/repositories"
)

// Operation identifies one resolver operation by name.
type Operation string

// List operations: public reads, no identity, failures propagate raw.
const (
	OpListUserProfiles Operation = "listDbUserProfiles"
	OpListArtists      Operation = "listDbArtists"
	OpListLikeArtists  Operation = "listDbLikeArtists"
	OpListQuestions    Operation = "listDbQuestions"
	OpListComments     Operation = "listDbComments"
)

// Authenticated reads.
const (
	OpListNotifications Operation = "listDbNotifications"
)

// Mutations: identity required, failures are converted to envelopes.
const (
	OpCreateUserProfile Operation = "createDbUserProfile"
	OpUpdateUserProfile Operation = "updateDbUserProfile"
	OpDeleteUserProfile Operation = "deleteDbUserProfile"
	OpCreateArtist      Operation = "createDbArtist"
	OpUpdateArtist      Operation = "updateDbArtist"
	OpDeleteArtist      Operation = "deleteDbArtist"
	OpCreateLikeArtist  Operation = "createDbLikeArtist"
	OpDeleteLikeArtist  Operation = "deleteDbLikeArtist"
	OpCreateQuestion    Operation = "createDbQuestion"
	OpUpdateQuestion    Operation = "updateDbQuestion"
	OpDeleteQuestion    Operation = "deleteDbQuestion"
	OpCreateComment     Operation = "createDbComment"
	OpUpdateComment     Operation = "updateDbComment"
	OpDeleteComment     Operation = "deleteDbComment"
)

// Error variables. The caller-visible messages match the mobile app's
// existing contract.
var (
	ErrUnauthorized     = errors.New("Unauthorized: user id is missing")
	ErrProfileNotFound  = errors.New("UserProfile not found")
	ErrArtistNotFound   = errors.New("Artist not found")
	ErrQuestionNotFound = errors.New("Question not found or unauthorized")
	ErrCommentNotFound  = errors.New("Comment not found or unauthorized")
)

// notificationFeedLimit caps the authenticated notification read.
const notificationFeedLimit = 50

// StoreAcquirer hands out a fresh store connection per invocation,
// together with a release func that must always run.
type StoreAcquirer interface {
	Acquire(ctx context.Context) (*sqlx.DB, func(), error)
}

// EventPublisher streams mutation events. Implementations never fail
// the mutation.
type EventPublisher interface {
	Publish(ctx context.Context, operation, entityID, userID string)
}

// NotificationStore keeps per-user notification feeds.
type NotificationStore interface {
	Push(ctx context.Context, n models.Notification) error
	Recent(ctx context.Context, userID string, limit int64) ([]models.Notification, error)
}

// Resolver routes operation names to per-entity CRUD operations. Each
// invocation is a stateless unit of work against a fresh store handle.
type Resolver struct {
	store         StoreAcquirer
	events        EventPublisher    // nil disables event publishing
	notifications NotificationStore // nil disables the notification feed
}

// NewResolver creates a Resolver. events and notifications may be nil.
func NewResolver(store StoreAcquirer, events EventPublisher, notifications NotificationStore) *Resolver {
	return &Resolver{
		store:         store,
		events:        events,
		notifications: notifications,
	}
}

type listFunc func(ctx context.Context, db *sqlx.DB) (any, error)

type mutationFunc func(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error)

var listOps = map[Operation]listFunc{
	OpListUserProfiles: listUserProfiles,
	OpListArtists:      listArtists,
	OpListLikeArtists:  listLikeArtists,
	OpListQuestions:    listQuestions,
	OpListComments:     listComments,
}

var mutationOps = map[Operation]mutationFunc{
	OpCreateUserProfile: createUserProfile,
	OpUpdateUserProfile: updateUserProfile,
	OpDeleteUserProfile: deleteUserProfile,
	OpCreateArtist:      createArtist,
	OpUpdateArtist:      updateArtist,
	OpDeleteArtist:      deleteArtist,
	OpCreateLikeArtist:  createLikeArtist,
	OpDeleteLikeArtist:  deleteLikeArtist,
	OpCreateQuestion:    createQuestion,
	OpUpdateQuestion:    updateQuestion,
	OpDeleteQuestion:    deleteQuestion,
	OpCreateComment:     createComment,
	OpUpdateComment:     updateComment,
	OpDeleteComment:     deleteComment,
}

// Resolve dispatches a resolver event. List failures are returned as
// errors for the caller to re-raise; every other failure is converted
// into a failure envelope so one bad mutation cannot crash the host.
func (r *Resolver) Resolve(ctx context.Context, event models.ResolverEvent) (any, error) {
	op := Operation(event.OperationName)
	raw := event.Arguments
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}

	logger.Log.Infow("resolver event",
		"operation", event.OperationName,
		"subject", event.Identity.Subject(),
	)

	if fn, ok := listOps[op]; ok {
		db, release, err := r.store.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
		return fn(ctx, db)
	}

	// Identity is resolved once, before any store access.
	userID := event.Identity.Subject()
	if userID == "" {
		return failureEnvelope(ErrUnauthorized), nil
	}

	if op == OpListNotifications {
		return r.listNotifications(ctx, userID)
	}

	if fn, ok := mutationOps[op]; ok {
		db, release, err := r.store.Acquire(ctx)
		if err != nil {
			return failureEnvelope(err), nil
		}
		defer release()

		out, err := fn(ctx, r, db, userID, raw)
		if err != nil {
			logger.Log.Errorw("operation failed",
				"operation", event.OperationName,
				"error", err,
			)
			return failureEnvelope(err), nil
		}
		return out, nil
	}

	return r.connectivityCheck(ctx)
}

// failureEnvelope converts any failure into the uniform status/body
// shape. Authorization and store failures are deliberately not
// distinguished on the wire.
func failureEnvelope(err error) models.Envelope {
	body, _ := json.Marshal(map[string]string{"error": err.Error()})
	return models.Envelope{StatusCode: 500, Body: string(body)}
}

// connectivityCheck is the diagnostic fallback for unrecognized
// operation names: a trivial query wrapped in a success envelope.
func (r *Resolver) connectivityCheck(ctx context.Context) (any, error) {
	db, release, err := r.store.Acquire(ctx)
	if err != nil {
		return failureEnvelope(err), nil
	}
	defer release()

	var now time.Time
	if err := db.GetContext(ctx, &now, `SELECT NOW() AS current_time`); err != nil {
		return failureEnvelope(err), nil
	}

	body, _ := json.Marshal(map[string]any{
		"message": "DB connection succeeded",
		"data": []map[string]string{
			{"current_time": now.UTC().Format(models.TimestampLayout)},
		},
	})
	return models.Envelope{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

// requireArg rejects a missing required string argument before any row
// is written. The columns behind these arguments are NOT NULL, and an
// empty string must not satisfy them.
func requireArg(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

func (r *Resolver) emit(ctx context.Context, op Operation, entityID, userID string) {
	if r.events == nil {
		return
	}
	r.events.Publish(ctx, string(op), entityID, userID)
}

func (r *Resolver) listNotifications(ctx context.Context, userID string) (any, error) {
	if r.notifications == nil {
		return []models.Notification{}, nil
	}
	return r.notifications.Recent(ctx, userID, notificationFeedLimit)
}

// notifyQuestionOwner pushes a feed entry when someone comments on
// another caller's question. Best-effort: never fails the mutation.
func (r *Resolver) notifyQuestionOwner(ctx context.Context, db *sqlx.DB, c *models.CommentDB) {
	if r.notifications == nil {
		return
	}

	owner, err := repositories.NewQuestionReadRepository(db).Owner(ctx, c.QuestionID)
	if err != nil {
		logger.Log.Errorw("failed to resolve question owner", "question_id", c.QuestionID, "error", err)
		return
	}
	if owner == c.UserID {
		return
	}

	n := models.Notification{
		ID:         uuid.New().String(),
		UserID:     owner,
		QuestionID: c.QuestionID,
		CommentID:  c.ID,
		ActorID:    c.UserID,
		CreatedAt:  time.Now().UTC().Format(models.TimestampLayout),
	}
	if err := r.notifications.Push(ctx, n); err != nil {
		logger.Log.Errorw("failed to push notification", "user_id", owner, "error", err)
	}
}

func listUserProfiles(ctx context.Context, db *sqlx.DB) (any, error) {
	return repositories.NewProfileReadRepository(db).List(ctx)
}

func listArtists(ctx context.Context, db *sqlx.DB) (any, error) {
	return repositories.NewArtistReadRepository(db).List(ctx)
}

func listLikeArtists(ctx context.Context, db *sqlx.DB) (any, error) {
	return repositories.NewLikeArtistReadRepository(db).List(ctx)
}

func listQuestions(ctx context.Context, db *sqlx.DB) (any, error) {
	rows, err := repositories.NewQuestionReadRepository(db).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.QuestionOutput, 0, len(rows))
	for _, q := range rows {
		out = append(out, q.Output())
	}
	return out, nil
}

func listComments(ctx context.Context, db *sqlx.DB) (any, error) {
	rows, err := repositories.NewCommentReadRepository(db).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.CommentOutput, 0, len(rows))
	for _, c := range rows {
		out = append(out, c.Output())
	}
	return out, nil
}

func createUserProfile(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.CreateUserProfileArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if err := requireArg("name", a.Name); err != nil {
		return nil, err
	}

	row, err := repositories.NewProfileWriteRepository(db).Upsert(ctx, userID, a)
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpCreateUserProfile, row.ID, userID)
	return row, nil
}

func updateUserProfile(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.UpdateUserProfileArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	exists, err := repositories.NewProfileReadRepository(db).Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProfileNotFound
	}

	row, err := repositories.NewProfileWriteRepository(db).Update(ctx, userID, a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpUpdateUserProfile, row.ID, userID)
	return row, nil
}

func deleteUserProfile(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, _ json.RawMessage) (any, error) {
	ok, err := repositories.NewProfileWriteRepository(db).Delete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		r.emit(ctx, OpDeleteUserProfile, userID, userID)
	}
	return ok, nil
}

func createArtist(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.CreateArtistArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if err := requireArg("name", a.Name); err != nil {
		return nil, err
	}

	row, err := repositories.NewArtistWriteRepository(db).Create(ctx, a)
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpCreateArtist, row.ID, userID)
	return row, nil
}

func updateArtist(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.UpdateArtistArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	row, err := repositories.NewArtistWriteRepository(db).Update(ctx, a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpUpdateArtist, row.ID, userID)
	return row, nil
}

func deleteArtist(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.DeleteArtistArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	ok, err := repositories.NewArtistWriteRepository(db).Delete(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if ok {
		r.emit(ctx, OpDeleteArtist, a.ID, userID)
	}
	return ok, nil
}

func createLikeArtist(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.CreateLikeArtistArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if err := requireArg("artistId", a.ArtistID); err != nil {
		return nil, err
	}

	row, err := repositories.NewLikeArtistWriteRepository(db).Create(ctx, userID, a)
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpCreateLikeArtist, row.ID, userID)
	return row, nil
}

func deleteLikeArtist(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.DeleteLikeArtistArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	ok, err := repositories.NewLikeArtistWriteRepository(db).Delete(ctx, a.ID, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		r.emit(ctx, OpDeleteLikeArtist, a.ID, userID)
	}
	return ok, nil
}

func createQuestion(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.CreateQuestionArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if err := requireArg("title", a.Title); err != nil {
		return nil, err
	}
	if err := requireArg("content", a.Content); err != nil {
		return nil, err
	}

	row, err := repositories.NewQuestionWriteRepository(db).Create(ctx, userID, a)
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpCreateQuestion, row.ID, userID)
	return row.Output(), nil
}

func updateQuestion(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.UpdateQuestionArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	exists, err := repositories.NewQuestionReadRepository(db).Exists(ctx, a.ID, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrQuestionNotFound
	}

	row, err := repositories.NewQuestionWriteRepository(db).Update(ctx, a.ID, userID, a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpUpdateQuestion, row.ID, userID)
	return row.Output(), nil
}

func deleteQuestion(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.DeleteQuestionArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	ok, err := repositories.NewQuestionWriteRepository(db).Delete(ctx, a.ID, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		r.emit(ctx, OpDeleteQuestion, a.ID, userID)
	}
	return ok, nil
}

func createComment(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.CreateCommentArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	if err := requireArg("questionId", a.QuestionID); err != nil {
		return nil, err
	}
	if err := requireArg("content", a.Content); err != nil {
		return nil, err
	}

	row, err := repositories.NewCommentWriteRepository(db).Create(ctx, userID, a)
	if err != nil {
		return nil, err
	}
	r.notifyQuestionOwner(ctx, db, row)
	r.emit(ctx, OpCreateComment, row.ID, userID)
	return row.Output(), nil
}

func updateComment(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.UpdateCommentArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	exists, err := repositories.NewCommentReadRepository(db).Exists(ctx, a.ID, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCommentNotFound
	}

	row, err := repositories.NewCommentWriteRepository(db).Update(ctx, a.ID, userID, a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	r.emit(ctx, OpUpdateComment, row.ID, userID)
	return row.Output(), nil
}

func deleteComment(ctx context.Context, r *Resolver, db *sqlx.DB, userID string, raw json.RawMessage) (any, error) {
	var a models.DeleteCommentArgs
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	ok, err := repositories.NewCommentWriteRepository(db).Delete(ctx, a.ID, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		r.emit(ctx, OpDeleteComment, a.ID, userID)
	}
	return ok, nil
}

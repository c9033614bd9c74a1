package repo

import (
	"Userdir/internal/db"
	"Userdir/internal/model"
	"Userdir/internal/validation"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	// UsersCollection is the default collection name for user documents.
	UsersCollection = "users"

	fieldUsername = "username"
	fieldEmail    = "email"
	fieldIsActive = "is_active"
)

// UserCollection is the subset of document operations the user store runs
// against its collection. *db.Repository[model.User] satisfies it.
type UserCollection interface {
	Create(ctx context.Context, document model.User) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter bson.M) (*model.User, error)
	FindAll(ctx context.Context, filter bson.M) ([]model.User, error)
	Update(ctx context.Context, filter bson.M, update bson.M) (*mongo.UpdateResult, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// UserRepository validates, uniqueness-checks and persists users.
// Every error it returns is a *model.UserError.
type UserRepository interface {
	Create(ctx context.Context, username, firstName, email string, isActive bool) (*model.User, error)
	Read(ctx context.Context, username string) (*model.User, error)
	ReadAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, username, newUsername, newFirstName, newEmail string, newIsActive bool) (*model.User, error)
	Count(ctx context.Context) (total int64, active int64, err error)
}

type userRepository struct {
	users  UserCollection
	logger *zap.Logger
}

func NewUserRepository(users UserCollection, logger *zap.Logger) UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userRepository{
		users:  users,
		logger: logger,
	}
}

// OpenUserRepository prepares the users collection on con and returns a
// repository bound to it. The collection is created with a case- and
// accent-insensitive collation and unique indexes on username and email.
// reset drops any existing collection first.
func OpenUserRepository(ctx context.Context, con *mongo.Database, collectionName string, reset bool, logger *zap.Logger) (UserRepository, error) {
	if collectionName == "" {
		collectionName = UsersCollection
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if reset {
		logger.Warn("resetting users collection", zap.String("collection", collectionName))
	}

	if err := db.EnsureCollection(ctx, con, collectionName, db.CaseInsensitiveCollation(), reset); err != nil {
		logger.Error("failed to prepare users collection", zap.Error(err))
		return nil, err
	}

	if err := db.EnsureUniqueIndexes(ctx, con, collectionName, fieldUsername, fieldEmail); err != nil {
		logger.Error("failed to create unique indexes", zap.Error(err))
		return nil, err
	}

	logger.Info("users collection ready", zap.String("collection", collectionName))

	return NewUserRepository(db.NewRepository[model.User](con, collectionName), logger), nil
}

// -----------------------------------------------------------------------------
// Create
// -----------------------------------------------------------------------------

func (r *userRepository) Create(ctx context.Context, username, firstName, email string, isActive bool) (*model.User, error) {
	if err := validation.ValidateUser(username, firstName, email, isActive); err != nil {
		return nil, err
	}

	filter := db.NewFilter().Or(
		bson.M{fieldUsername: username},
		bson.M{fieldEmail: email},
	).Build()

	if err := r.checkDuplicate(ctx, filter, username, email); err != nil {
		return nil, err
	}

	user := model.User{
		Username:  username,
		FirstName: firstName,
		Email:     email,
		IsActive:  isActive,
	}

	result, err := r.users.Create(ctx, user)
	if err != nil {
		return nil, r.writeError(err, "create", username)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	r.logger.Info("user created",
		zap.String("username", username),
		zap.String("id", user.ID.Hex()),
	)
	return &user, nil
}

// -----------------------------------------------------------------------------
// Read
// -----------------------------------------------------------------------------

func (r *userRepository) Read(ctx context.Context, username string) (*model.User, error) {
	filter := db.NewFilter().Eq(fieldUsername, username).Build()

	user, err := r.users.FindOne(ctx, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.NewNotFound("User %s not found", username)
		}
		r.logger.Error("failed to read user", zap.Error(err), zap.String("username", username))
		return nil, model.NewStoreError("Failed to read user %s", username)
	}

	return user, nil
}

// -----------------------------------------------------------------------------
// ReadAll
// -----------------------------------------------------------------------------

func (r *userRepository) ReadAll(ctx context.Context) ([]model.User, error) {
	users, err := r.users.FindAll(ctx, db.Empty())
	if err != nil {
		r.logger.Error("failed to read users", zap.Error(err))
		return nil, model.NewStoreError("Failed to read users")
	}

	if users == nil {
		users = []model.User{}
	}

	r.logger.Debug("users retrieved", zap.Int("count", len(users)))
	return users, nil
}

// -----------------------------------------------------------------------------
// Update
// -----------------------------------------------------------------------------

func (r *userRepository) Update(ctx context.Context, username, newUsername, newFirstName, newEmail string, newIsActive bool) (*model.User, error) {
	if err := validation.ValidateUser(newUsername, newFirstName, newEmail, newIsActive); err != nil {
		return nil, err
	}

	// The record being updated never collides with itself. Existence of
	// username is only known after the write, so an unknown username whose
	// new values collide reports Duplicate.
	filter := db.NewFilter().And(
		db.NewFilter().Ne(fieldUsername, username).Build(),
		db.NewFilter().Or(
			bson.M{fieldUsername: newUsername},
			bson.M{fieldEmail: newEmail},
		).Build(),
	).Build()

	if err := r.checkDuplicate(ctx, filter, newUsername, newEmail); err != nil {
		return nil, err
	}

	user := model.User{
		Username:  newUsername,
		FirstName: newFirstName,
		Email:     newEmail,
		IsActive:  newIsActive,
	}

	result, err := r.users.Update(ctx, db.NewFilter().Eq(fieldUsername, username).Build(), user.Fields())
	if err != nil {
		return nil, r.writeError(err, "update", username)
	}

	if result.MatchedCount == 0 {
		return nil, model.NewNotFound("User %s not found to update", username)
	}

	r.logger.Info("user updated",
		zap.String("username", username),
		zap.String("new_username", newUsername),
	)
	return &user, nil
}

// -----------------------------------------------------------------------------
// Count
// -----------------------------------------------------------------------------

// Count reports how many users are stored and how many of them are active.
func (r *userRepository) Count(ctx context.Context) (int64, int64, error) {
	total, err := r.users.Count(ctx, db.Empty())
	if err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return 0, 0, model.NewStoreError("Failed to count users")
	}

	active, err := r.users.Count(ctx, db.NewFilter().Eq(fieldIsActive, true).Build())
	if err != nil {
		r.logger.Error("failed to count active users", zap.Error(err))
		return 0, 0, model.NewStoreError("Failed to count users")
	}

	return total, active, nil
}

// -----------------------------------------------------------------------------
// Private Helper Methods
// -----------------------------------------------------------------------------

// checkDuplicate runs filter and reports which of username/email is already
// taken by a matching record. Field comparison follows the collection
// collation so the verdict agrees with the store's own matching.
func (r *userRepository) checkDuplicate(ctx context.Context, filter bson.M, username, email string) error {
	matches, err := r.users.FindAll(ctx, filter)
	if err != nil {
		r.logger.Error("duplicate check failed", zap.Error(err), zap.String("username", username))
		return model.NewStoreError("Failed to check for existing users")
	}
	if len(matches) == 0 {
		return nil
	}

	var usernameTaken, emailTaken bool
	for _, m := range matches {
		if model.SameText(m.Username, username) {
			usernameTaken = true
		}
		if model.SameText(m.Email, email) {
			emailTaken = true
		}
	}

	field := duplicateField(usernameTaken, emailTaken)
	r.logger.Debug("duplicate user rejected",
		zap.String("username", username),
		zap.String("field", string(field)),
	)
	return model.NewDuplicate(field)
}

// duplicateField maps the collision flags to the reported field. A match the
// fold could not attribute (collation drift) is reported as both.
func duplicateField(usernameTaken, emailTaken bool) model.DuplicateField {
	switch {
	case usernameTaken && !emailTaken:
		return model.DuplicateUsername
	case emailTaken && !usernameTaken:
		return model.DuplicateEmail
	default:
		return model.DuplicateBoth
	}
}

// writeError translates a failed insert/update. A unique index violation
// (a concurrent writer won the check-then-act race) becomes Duplicate;
// anything else is logged and surfaced as an opaque store error.
func (r *userRepository) writeError(err error, op, username string) error {
	if field, ok := db.DuplicateKeyIndex(err, fieldUsername, fieldEmail); ok {
		r.logger.Warn("unique index rejected write",
			zap.String("operation", op),
			zap.String("username", username),
			zap.String("field", field),
		)
		switch field {
		case fieldUsername:
			return model.NewDuplicate(model.DuplicateUsername)
		case fieldEmail:
			return model.NewDuplicate(model.DuplicateEmail)
		default:
			return model.NewDuplicate(model.DuplicateBoth)
		}
	}

	r.logger.Error("user write failed",
		zap.Error(err),
		zap.String("operation", op),
		zap.String("username", username),
	)
	return model.NewStoreError("Failed to %s user %s", op, username)
}

package store

import (
	"context"

	chatmodel "PairChat/module/chat/model"
	usermodel "PairChat/module/user/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implements Store on top of a mongo database. Same contract as
// Memory; selected by config.
type Mongo struct {
	userColl *mongo.Collection
	convColl *mongo.Collection
	msgColl  *mongo.Collection
}

func NewMongo(ctx context.Context, db *mongo.Database) (*Mongo, error) {
	s := &Mongo{
		userColl: db.Collection(usermodel.User{}.Collection()),
		convColl: db.Collection(chatmodel.Conversation{}.Collection()),
		msgColl:  db.Collection(chatmodel.Message{}.Collection()),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "ensure indexes")
	}
	return s, nil
}

var _ Store = (*Mongo)(nil)

func (s *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := s.userColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = s.convColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "conversation_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_a_id", Value: 1}, {Key: "user_b_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}
	_, err = s.msgColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "message_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "create_time", Value: 1}}},
	})
	return err
}

// ---- users ----

func (s *Mongo) CreateUser(ctx context.Context, u *usermodel.User) error {
	_, err := s.userColl.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Mongo) GetUserByID(ctx context.Context, userID int64) (*usermodel.User, error) {
	var u usermodel.User
	err := s.userColl.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Mongo) GetUserByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	var u usermodel.User
	err := s.userColl.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Mongo) ListUsers(ctx context.Context) ([]usermodel.User, error) {
	cur, err := s.userColl.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"user_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	var out []usermodel.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return s.updateUser(ctx, userID, bson.M{"password_hash": passwordHash})
}

func (s *Mongo) UpdatePicture(ctx context.Context, userID int64, pictureURL string) error {
	return s.updateUser(ctx, userID, bson.M{"picture_url": pictureURL})
}

func (s *Mongo) updateUser(ctx context.Context, userID int64, set bson.M) error {
	res, err := s.userColl.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- conversations ----

func (s *Mongo) CreateConversation(ctx context.Context, c *chatmodel.Conversation) error {
	c.UserAID, c.UserBID = PairKey(c.UserAID, c.UserBID)
	_, err := s.convColl.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Mongo) GetConversation(ctx context.Context, conversationID int64) (*chatmodel.Conversation, error) {
	var c chatmodel.Conversation
	err := s.convColl.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Mongo) GetConversations(ctx context.Context, userID int64) ([]chatmodel.Conversation, error) {
	cur, err := s.convColl.Find(ctx,
		bson.M{"$or": bson.A{bson.M{"user_a_id": userID}, bson.M{"user_b_id": userID}}},
		options.Find().SetSort(bson.M{"conversation_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	var out []chatmodel.Conversation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) FindConversationByUsers(ctx context.Context, userAID, userBID int64) (*chatmodel.Conversation, error) {
	a, b := PairKey(userAID, userBID)
	var c chatmodel.Conversation
	err := s.convColl.FindOne(ctx, bson.M{"user_a_id": a, "user_b_id": b}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ---- messages ----

func (s *Mongo) CreateMessage(ctx context.Context, m *chatmodel.Message) error {
	if _, err := s.GetConversation(ctx, m.ConversationID); err != nil {
		return err
	}
	_, err := s.msgColl.InsertOne(ctx, m)
	return err
}

func (s *Mongo) GetMessages(ctx context.Context, conversationID int64) ([]chatmodel.Message, error) {
	cur, err := s.msgColl.Find(ctx, bson.M{"conversation_id": conversationID},
		options.Find().SetSort(bson.M{"create_time": 1}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	out := make([]chatmodel.Message, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Mongo) LastMessage(ctx context.Context, conversationID int64) (*chatmodel.Message, error) {
	var m chatmodel.Message
	err := s.msgColl.FindOne(ctx, bson.M{"conversation_id": conversationID},
		options.FindOne().SetSort(bson.M{"create_time": -1})).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Mongo) CountUnread(ctx context.Context, conversationID, readerID int64) (int64, error) {
	return s.msgColl.CountDocuments(ctx, bson.M{
		"conversation_id": conversationID,
		"is_read":         false,
		"sender_id":       bson.M{"$ne": readerID},
	})
}

func (s *Mongo) MarkConversationMessagesAsRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	res, err := s.msgColl.UpdateMany(ctx, bson.M{
		"conversation_id": conversationID,
		"is_read":         false,
		"sender_id":       bson.M{"$ne": readerID},
	}, bson.M{"$set": bson.M{"is_read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

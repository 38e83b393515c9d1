package main

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient *mongo.Client
	once        sync.Once
	initError   error
)

// GetMongoClient returns a singleton MongoDB client.
func GetMongoClient(uri string) (*mongo.Client, error) {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			initError = err
			return
		}
		mongoClient = client
		log.Println("MongoDB connected successfully")
	})
	return mongoClient, initError
}

type mongoStore struct {
	users  *mongo.Collection
	todos  *mongo.Collection
	habits *mongo.Collection
}

// NewMongoStore wires the three collections and creates the unique email
// index. The index is the single source of truth for duplicate registrations.
func NewMongoStore(ctx context.Context, uri, dbName string) (Store, error) {
	client, err := GetMongoClient(uri)
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)
	s := &mongoStore{
		users:  db.Collection("users"),
		todos:  db.Collection("todos"),
		habits: db.Collection("habits"),
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *mongoStore) InsertUser(ctx context.Context, u *User) error {
	_, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *mongoStore) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

func (s *mongoStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var u User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapMongoErr(err)
	}
	return &u, nil
}

func (s *mongoStore) InsertTodo(ctx context.Context, t *Todo) error {
	_, err := s.todos.InsertOne(ctx, t)
	return err
}

func (s *mongoStore) FindTodoByID(ctx context.Context, id primitive.ObjectID) (*Todo, error) {
	var t Todo
	if err := s.todos.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, mapMongoErr(err)
	}
	return &t, nil
}

func (s *mongoStore) ListTodosByUser(ctx context.Context, userID primitive.ObjectID) ([]Todo, error) {
	return s.findTodos(ctx, bson.M{"user": userID})
}

func (s *mongoStore) CompleteTodo(ctx context.Context, id primitive.ObjectID) (*Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t Todo
	err := s.todos.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": StatusCompleted}},
		opts,
	).Decode(&t)
	if err != nil {
		return nil, mapMongoErr(err)
	}
	return &t, nil
}

func (s *mongoStore) DeleteTodo(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.todos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) ListCompletedTodosInWindow(ctx context.Context, userID *primitive.ObjectID, from, to time.Time) ([]Todo, error) {
	filter := bson.M{
		"status":    StatusCompleted,
		"createdAt": bson.M{"$gte": from, "$lt": to},
	}
	if userID != nil {
		filter["user"] = *userID
	}
	return s.findTodos(ctx, filter)
}

func (s *mongoStore) CountTodosByStatus(ctx context.Context, userID primitive.ObjectID, status string) (int64, error) {
	return s.todos.CountDocuments(ctx, bson.M{"user": userID, "status": status})
}

func (s *mongoStore) CountTodosByStatusInWindow(ctx context.Context, userID primitive.ObjectID, status string, from, to time.Time) (int64, error) {
	return s.todos.CountDocuments(ctx, bson.M{
		"user":      userID,
		"status":    status,
		"createdAt": bson.M{"$gte": from, "$lt": to},
	})
}

func (s *mongoStore) findTodos(ctx context.Context, filter bson.M) ([]Todo, error) {
	cur, err := s.todos.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	todos := []Todo{}
	for cur.Next(ctx) {
		var t Todo
		if err := cur.Decode(&t); err == nil {
			todos = append(todos, t)
		}
	}
	return todos, cur.Err()
}

func (s *mongoStore) InsertHabit(ctx context.Context, h *Habit) error {
	_, err := s.habits.InsertOne(ctx, h)
	return err
}

func (s *mongoStore) FindHabitByID(ctx context.Context, id primitive.ObjectID) (*Habit, error) {
	var h Habit
	if err := s.habits.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		return nil, mapMongoErr(err)
	}
	return &h, nil
}

func (s *mongoStore) ListHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]Habit, error) {
	cur, err := s.habits.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	habits := []Habit{}
	for cur.Next(ctx) {
		var h Habit
		if err := cur.Decode(&h); err == nil {
			habits = append(habits, h)
		}
	}
	return habits, cur.Err()
}

func (s *mongoStore) UpdateHabitFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Habit, error) {
	return s.findOneAndUpdateHabit(ctx, id, bson.M{"$set": bson.M(fields)})
}

func (s *mongoStore) ReplaceHabitCompleted(ctx context.Context, id primitive.ObjectID, completed map[string]bool) (*Habit, error) {
	return s.findOneAndUpdateHabit(ctx, id, bson.M{"$set": bson.M{"completed": completed}})
}

func (s *mongoStore) MarkHabitDay(ctx context.Context, id primitive.ObjectID, day, kind string) (*Habit, error) {
	return s.findOneAndUpdateHabit(ctx, id, bson.M{"$set": bson.M{kind + "." + day: true}})
}

func (s *mongoStore) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.habits.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) findOneAndUpdateHabit(ctx context.Context, id primitive.ObjectID, update bson.M) (*Habit, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var h Habit
	if err := s.habits.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&h); err != nil {
		return nil, mapMongoErr(err)
	}
	return &h, nil
}

func mapMongoErr(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

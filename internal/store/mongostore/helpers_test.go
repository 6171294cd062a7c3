package mongostore

import (
	"errors"
	"fmt"
	"testing"

	"moviesgo/internal/store"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestScoped(t *testing.T) {
	base := bson.D{{Key: "email", Value: "a@b.c"}}

	got := scoped(base, store.ActiveOnly)
	require.Equal(t, bson.D{{Key: "email", Value: "a@b.c"}, {Key: "deleted", Value: false}}, got)
	require.Len(t, base, 1)

	require.Equal(t, base, scoped(base, store.IncludeDeleted))
	require.Equal(t, bson.D{{Key: "deleted", Value: false}}, scoped(bson.D{}, store.ActiveOnly))
}

func TestMovieFilter(t *testing.T) {
	require.Empty(t, movieFilter(store.MovieFilter{}))

	f := movieFilter(store.MovieFilter{Category: "drama", Title: "star (wars"})
	require.Len(t, f, 2)
	require.Equal(t, "drama", f[0].Value)
	re := f[1].Value.(bson.Regex)
	require.Equal(t, `star \(wars`, re.Pattern)
	require.Equal(t, "i", re.Options)
}

func TestWrapError(t *testing.T) {
	require.NoError(t, wrapError(nil))
	require.ErrorIs(t, wrapError(mongo.ErrNoDocuments), store.ErrNotFound)

	plain := errors.New("x")
	require.Equal(t, plain, wrapError(plain))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{
		Code:    11000,
		Message: fmt.Sprintf("E11000 duplicate key error collection: moviesgo.users index: %s dup key", idxUsersEmail),
	}}}
	err := wrapError(dup)
	require.ErrorIs(t, err, store.ErrDuplicate)
	var de *store.DuplicateError
	require.True(t, errors.As(err, &de))
	require.Equal(t, "email", de.Field)
}

func TestDuplicateField(t *testing.T) {
	require.Equal(t, "username", duplicateField("index: "+idxUsersUsername))
	require.Equal(t, "key", duplicateField("index: _id_"))
}

// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast.

The unique indexes here are load-bearing: they close the
check-before-insert races on user email/identity, brand-admin delegation
(one per user), slugs, and duplicate RSVPs. Stores rely on the resulting
duplicate-key errors for their conflict paths.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context, *mongo.Database) error) {
		if err := fn(ctx, db); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", ensureUsers)
	ensure("brand_admins", ensureBrandAdmins)
	ensure("brands", ensureBrands)
	ensure("events", ensureEvents)
	ensure("rsvps", ensureRSVPs)
	ensure("banners", ensureBanners)
	ensure("leads", ensureLeads)
	ensure("review_posts", ensureReviewPosts)
	ensure("comments", ensureComments)
	ensure("communities", ensureCommunities)
	ensure("community_posts", ensureCommunityPosts)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func create(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	return err
}

func unique() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "users", []mongo.IndexModel{
		{Keys: bson.D{{Key: "auth_id", Value: 1}}, Options: unique().SetName("uniq_auth_id")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique().SetName("uniq_email")},
		{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("by_role")},
	})
}

func ensureBrandAdmins(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "brand_admins", []mongo.IndexModel{
		// One delegation per user, enforced by the database rather than a
		// check-before-insert.
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique().SetName("uniq_user")},
		{Keys: bson.D{{Key: "brand_id", Value: 1}}, Options: options.Index().SetName("by_brand")},
	})
}

func ensureBrands(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "brands", []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique().SetName("uniq_slug")},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "name_ci", Value: 1}}, Options: options.Index().SetName("by_active_name")},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "events", []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique().SetName("uniq_slug")},
		// Upcoming-events queries filter on (visible, date) and sort by date.
		{Keys: bson.D{{Key: "visible", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetName("by_visible_date")},
		{Keys: bson.D{{Key: "brand_id", Value: 1}}, Options: options.Index().SetName("by_brand")},
	})
}

func ensureRSVPs(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "rsvps", []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: unique().SetName("uniq_event_user")},
	})
}

func ensureBanners(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "banners", []mongo.IndexModel{
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "order", Value: 1}}, Options: options.Index().SetName("by_active_order")},
	})
}

func ensureLeads(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "leads", []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_status_created")},
	})
}

func ensureReviewPosts(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "review_posts", []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_created")},
		{Keys: bson.D{{Key: "car_id", Value: 1}}, Options: options.Index().SetName("by_car")},
	})
}

func ensureComments(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "comments", []mongo.IndexModel{
		{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}}, Options: options.Index().SetName("by_post_created")},
	})
}

func ensureCommunities(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "communities", []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique().SetName("uniq_slug")},
		{Keys: bson.D{{Key: "member_count", Value: -1}}, Options: options.Index().SetName("by_members")},
	})
}

func ensureCommunityPosts(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db, "community_posts", []mongo.IndexModel{
		{Keys: bson.D{{Key: "community_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("by_community_created")},
	})
}

package store

import (
	"fmt"
	"time"

	"github.com/modqueue/backend/internal/models"
)

var fixtureReasons = []string{
	"Spam",
	"Harassment",
	"Scam",
	"Off-topic",
	"Misinformation",
	"Inappropriate Content",
}

// FixturePosts builds the seed collection: a handful of authored posts in
// mixed states plus a block of generated pending posts so pagination has
// something to page over. Ids are stable across restarts.
func FixturePosts() []models.Post {
	posts := []models.Post{
		{
			ID:             "post_001",
			Title:          "Amazing sunset photos from my vacation",
			Content:        "Just got back from an incredible trip to Bali. The sunsets there are absolutely breathtaking! Here are some photos I took during my stay. The colors in the sky were beyond anything I could have imagined.",
			Author:         models.Author{ID: "user_001", Username: "wanderlust_jane"},
			ReportedReason: "Spam",
			ReportedAt:     mustTime("2025-01-20T14:30:00Z"),
			Status:         models.StatusPending,
			ReportCount:    2,
			Images: []string{
				"https://images.pexels.com/photos/189349/pexels-photo-189349.jpeg?auto=compress&cs=tinysrgb&w=800",
				"https://images.pexels.com/photos/457882/pexels-photo-457882.jpeg?auto=compress&cs=tinysrgb&w=800",
			},
		},
		{
			ID:             "post_002",
			Title:          "New restaurant review - terrible service!",
			Content:        "Went to this new place downtown last night. The food was okay but the service was absolutely horrible. The waiter was rude and kept us waiting for over an hour. Would not recommend to anyone.",
			Author:         models.Author{ID: "user_002", Username: "foodie_mike"},
			ReportedReason: "Harassment",
			ReportedAt:     mustTime("2025-01-20T12:15:00Z"),
			Status:         models.StatusPending,
			ReportCount:    5,
		},
		{
			ID:             "post_003",
			Title:          "Check out my new business venture!",
			Content:        "Hey everyone! I just started my own consulting business and I'm looking for clients. We specialize in digital marketing and social media growth. Contact me for a free consultation!",
			Author:         models.Author{ID: "user_003", Username: "entrepreneur_alex"},
			ReportedReason: "Inappropriate Content",
			ReportedAt:     mustTime("2025-01-20T09:45:00Z"),
			Status:         models.StatusPending,
			ReportCount:    1,
		},
		{
			ID:             "post_004",
			Title:          "Great community event last weekend",
			Content:        "The local charity run was amazing! So many people came out to support a great cause. We raised over $10,000 for the local food bank. Thanks to everyone who participated!",
			Author:         models.Author{ID: "user_004", Username: "community_helper"},
			ReportedReason: "Misinformation",
			ReportedAt:     mustTime("2025-01-19T16:20:00Z"),
			Status:         models.StatusApproved,
			ReportCount:    1,
		},
		{
			ID:             "post_005",
			Title:          "Selling brand new iPhone - cheap!",
			Content:        "Brand new iPhone 15 Pro Max for sale. Still in box, never opened. Selling for $200 cash only. Contact me ASAP as I need to sell quickly!",
			Author:         models.Author{ID: "user_005", Username: "deals_hunter"},
			ReportedReason: "Scam",
			ReportedAt:     mustTime("2025-01-19T11:30:00Z"),
			Status:         models.StatusRejected,
			ReportCount:    8,
		},
		{
			ID:             "post_006",
			Title:          "Weekly workout routine sharing",
			Content:        "Sharing my weekly workout routine that has been working great for me. Monday: Chest and triceps, Tuesday: Back and biceps, Wednesday: Rest day, Thursday: Legs, Friday: Shoulders, Weekend: Cardio and flexibility.",
			Author:         models.Author{ID: "user_006", Username: "fitness_guru"},
			ReportedReason: "Off-topic",
			ReportedAt:     mustTime("2025-01-19T08:15:00Z"),
			Status:         models.StatusPending,
			ReportCount:    1,
		},
		{
			ID:             "post_007",
			Title:          "Political discussion getting heated",
			Content:        "I think we need to have a serious discussion about the current political climate. The recent policies have been affecting our community in ways that we need to address.",
			Author:         models.Author{ID: "user_007", Username: "political_observer"},
			ReportedReason: "Political Content",
			ReportedAt:     mustTime("2025-01-18T19:45:00Z"),
			Status:         models.StatusPending,
			ReportCount:    12,
		},
		{
			ID:             "post_008",
			Title:          "Recipe share: Grandma's chocolate cookies",
			Content:        "My grandmother's secret chocolate cookie recipe that has been in our family for generations. Ingredients: 2 cups flour, 1 cup butter, 1/2 cup cocoa powder, 1 cup sugar, 2 eggs, 1 tsp vanilla extract...",
			Author:         models.Author{ID: "user_008", Username: "baker_betty"},
			ReportedReason: "Copyright",
			ReportedAt:     mustTime("2025-01-18T15:30:00Z"),
			Status:         models.StatusApproved,
			ReportCount:    1,
		},
	}

	// generated pending posts so the pending view spans several pages
	for i := 0; i < 25; i++ {
		n := 9 + i
		posts = append(posts, models.Post{
			ID:             fmt.Sprintf("post_%d", n),
			Title:          fmt.Sprintf("Sample pending post %d", n),
			Content:        fmt.Sprintf("This is a mock pending post number %d. It's generated for pagination testing with random reported reasons and counts.", n),
			Author:         models.Author{ID: fmt.Sprintf("user_%d", n), Username: fmt.Sprintf("user_%d", n)},
			ReportedReason: fixtureReasons[i%len(fixtureReasons)],
			ReportedAt:     time.Date(2025, 1, 18+(i%10), 10+(i%10), 0, 0, 0, time.UTC),
			Status:         models.StatusPending,
			ReportCount:    (i % 12) + 1,
		})
	}

	return posts
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

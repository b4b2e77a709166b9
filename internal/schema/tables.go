package schema

// Table declarations for every sheet tab the application owns. The header
// of each tab is written once by EnsureSchema at startup and never mutated
// afterwards; changing a declaration here does not repair an existing tab.
var (
	// Users holds one row per registered account, keyed by phone number.
	Users = Table{
		Name: "Users",
		Key:  "phone",
		Columns: []Column{
			{Name: "phone", Kind: String},
			{Name: "pin", Kind: String}, // argon2id hash, never the raw PIN
			{Name: "name", Kind: String},
			{Name: "balance", Kind: Number},
			{Name: "createdAt", Kind: Time},
		},
	}

	// Transactions records every money movement.
	Transactions = Table{
		Name: "Transactions",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "type", Kind: String}, // send | cashin | cashout | recharge
			{Name: "amount", Kind: Number},
			{Name: "fee", Kind: Number},
			{Name: "counterparty", Kind: String},
			{Name: "status", Kind: String},
			{Name: "createdAt", Kind: Time},
			{Name: "updatedAt", Kind: Time},
		},
	}

	// FeatureFlags is the admin console's key/value switchboard.
	FeatureFlags = Table{
		Name: "FeatureFlags",
		Key:  "key",
		Columns: []Column{
			{Name: "key", Kind: String},
			{Name: "value", Kind: String},
			{Name: "type", Kind: String}, // bool | string | number
		},
	}

	// Banners are the rotating promo images shown in the app.
	Banners = Table{
		Name: "Banners",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "image", Kind: String},
			{Name: "link", Kind: String},
			{Name: "createdAt", Kind: Time},
		},
	}

	// Requests are user-submitted cash-in/cash-out/recharge requests
	// awaiting admin approval.
	Requests = Table{
		Name: "Requests",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "type", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "amount", Kind: Number},
			{Name: "method", Kind: String},
			{Name: "number", Kind: String},
			{Name: "status", Kind: String},
			{Name: "createdAt", Kind: Time},
			{Name: "updatedAt", Kind: Time},
		},
	}

	// Members are the enrolled members of a somiti (savings group).
	Members = Table{
		Name: "Members",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "somitiId", Kind: String},
			{Name: "name", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "role", Kind: String},
			{Name: "joinedAt", Kind: Time},
		},
	}

	// Workers are field agents collecting somiti payments.
	Workers = Table{
		Name: "Workers",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "name", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "area", Kind: String},
			{Name: "active", Kind: Bool},
			{Name: "createdAt", Kind: Time},
		},
	}

	// Somiti is the registry of savings groups.
	Somiti = Table{
		Name: "Somiti",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "name", Kind: String},
			{Name: "area", Kind: String},
			{Name: "ownerPhone", Kind: String},
			{Name: "createdAt", Kind: Time},
		},
	}

	// SomitiDetails carries the aggregate state of each somiti.
	SomitiDetails = Table{
		Name: "SomitiDetails",
		Key:  "somitiId",
		Columns: []Column{
			{Name: "somitiId", Kind: String},
			{Name: "balance", Kind: Number},
			{Name: "memberCount", Kind: Number},
			{Name: "note", Kind: String},
			{Name: "updatedAt", Kind: Time},
		},
	}

	// Tasks are work items assigned to workers.
	Tasks = Table{
		Name: "Tasks",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "workerId", Kind: String},
			{Name: "title", Kind: String},
			{Name: "detail", Kind: String},
			{Name: "status", Kind: String},
			{Name: "createdAt", Kind: Time},
			{Name: "updatedAt", Kind: Time},
		},
	}

	// Notifications are per-user in-app messages.
	Notifications = Table{
		Name: "Notifications",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "title", Kind: String},
			{Name: "body", Kind: String},
			{Name: "read", Kind: Bool},
			{Name: "createdAt", Kind: Time},
		},
	}

	// PayoutWallets is the admin payout configuration per wallet provider.
	PayoutWallets = Table{
		Name: "PayoutWallets",
		Key:  "key",
		Columns: []Column{
			{Name: "key", Kind: String},
			{Name: "enabled", Kind: Bool},
			{Name: "reserve", Kind: Number},
		},
	}

	// Posts are the social feed entries.
	Posts = Table{
		Name: "Posts",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "text", Kind: String},
			{Name: "image", Kind: String},
			{Name: "createdAt", Kind: Time},
		},
	}

	// Comments attach to posts.
	Comments = Table{
		Name: "Comments",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "postId", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "text", Kind: String},
			{Name: "createdAt", Kind: Time},
		},
	}

	// Likes are one row per (post, phone) pair.
	Likes = Table{
		Name: "Likes",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "postId", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "createdAt", Kind: Time},
		},
	}

	// FriendRequests form the social graph.
	FriendRequests = Table{
		Name: "FriendRequests",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "fromPhone", Kind: String},
			{Name: "toPhone", Kind: String},
			{Name: "status", Kind: String}, // requested | accepted | rejected
			{Name: "createdAt", Kind: Time},
		},
	}

	// Stories are media posts that expire after 24 hours.
	Stories = Table{
		Name: "Stories",
		Key:  "id",
		Columns: []Column{
			{Name: "id", Kind: String},
			{Name: "phone", Kind: String},
			{Name: "media", Kind: String},
			{Name: "mimeType", Kind: String},
			{Name: "createdAt", Kind: Time},
			{Name: "expiresAt", Kind: Time},
		},
	}
)

// All lists every declared table, used by the startup schema pass.
func All() []Table {
	return []Table{
		Users,
		Transactions,
		FeatureFlags,
		Banners,
		Requests,
		Members,
		Workers,
		Somiti,
		SomitiDetails,
		Tasks,
		Notifications,
		PayoutWallets,
		Posts,
		Comments,
		Likes,
		FriendRequests,
		Stories,
	}
}

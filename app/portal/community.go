package portal

// AddCommunityPost appends an update to the community feed. Author and
// content are both required; the author is a free-text name so posting
// doesn't need a session.
func (r *Repository) AddCommunityPost(author, content string) (CommunityPost, error) {
	if err := requireField("author", author); err != nil {
		return CommunityPost{}, err
	}
	if err := requireField("content", content); err != nil {
		return CommunityPost{}, err
	}
	post := CommunityPost{Author: author, Content: content, Date: r.Today()}
	return r.Community.Insert(post)
}

// CommunityFeed returns the posts newest first, the display order. The
// stored sequence stays append-ordered.
func (r *Repository) CommunityFeed() ([]CommunityPost, error) {
	posts, err := r.Community.All()
	if err != nil {
		return nil, err
	}
	res := make([]CommunityPost, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		res = append(res, posts[i])
	}
	return res, nil
}

// Notify records a local notification, newest first
func (r *Repository) Notify(text string) (Notification, error) {
	return r.Notifications.Insert(Notification{Text: text, Date: r.Today()})
}

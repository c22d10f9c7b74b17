package provisioning

type starterList struct {
	Name  string
	Icon  string
	Color string
	Tasks []string
}

// starterLists is the fixed content seeded for a new user, in creation order.
var starterLists = []starterList{
	{
		Name:  "Personal",
		Icon:  "user",
		Color: "#3B82F6",
		Tasks: []string{
			"Welcome! Tick this task off to get started",
			"Create a list of your own",
			"Share a list with someone you trust",
		},
	},
	{
		Name:  "Work",
		Icon:  "briefcase",
		Color: "#10B981",
		Tasks: []string{
			"Plan this week's priorities",
			"Invite a teammate to this list",
		},
	},
}

// StarterTaskCount is the number of tasks a fresh provisioning creates.
func StarterTaskCount() int {
	n := 0
	for _, l := range starterLists {
		n += len(l.Tasks)
	}
	return n
}

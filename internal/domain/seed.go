package domain

// KnownCategories is the fixed category list offered as filters, in display order.
var KnownCategories = []string{
	"Infrastructure",
	"People & Email",
	"Link Analysis",
	"Certificates",
	"Archives",
	"Code Intelligence",
	"Technology Lookup",
	"DNS",
	"Meta",
}

// SeedTools returns the built-in catalog used on first run and by reset.
func SeedTools() []Tool {
	return []Tool{
		{
			ID:          "shodan",
			Name:        "Shodan",
			URL:         "https://www.shodan.io/",
			Category:    "Infrastructure",
			Description: "Search engine for internet-connected devices and services.",
			Tags:        []string{"ip", "port-scan", "iot", "recon"},
			Trending:    98,
		},
		{
			ID:          "censys",
			Name:        "Censys",
			URL:         "https://search.censys.io/",
			Category:    "Infrastructure",
			Description: "Discover and monitor hosts and certificates across the internet.",
			Tags:        []string{"certificates", "assets", "surface"},
			Trending:    87,
		},
		{
			ID:          "hunter",
			Name:        "Hunter.io",
			URL:         "https://hunter.io/",
			Category:    "People & Email",
			Description: "Find professional email addresses and verify deliverability.",
			Tags:        []string{"email", "people", "company"},
			Trending:    74,
		},
		{
			ID:          "maltego",
			Name:        "Maltego",
			URL:         "https://www.maltego.com/",
			Category:    "Link Analysis",
			Description: "Graph-based link analysis for relationships between entities.",
			Tags:        []string{"graphs", "analysis", "intel"},
			Trending:    81,
		},
		{
			ID:          "crtsh",
			Name:        "crt.sh",
			URL:         "https://crt.sh/",
			Category:    "Certificates",
			Description: "Query Certificate Transparency logs for domain certificates.",
			Tags:        []string{"ct-logs", "domains"},
			Trending:    69,
		},
		{
			ID:          "archive",
			Name:        "Wayback Machine",
			URL:         "https://web.archive.org/",
			Category:    "Archives",
			Description: "View historical snapshots of websites.",
			Tags:        []string{"history", "snapshots"},
			Trending:    77,
		},
		{
			ID:          "gh-dorks",
			Name:        "GitHub Dorks",
			URL:         "https://github.com/techgaun/github-dorks",
			Category:    "Code Intelligence",
			Description: "Curated search patterns to find sensitive info on GitHub.",
			Tags:        []string{"secrets", "source-code", "dorks"},
			Trending:    72,
		},
		{
			ID:          "builtwith",
			Name:        "BuiltWith",
			URL:         "https://builtwith.com/",
			Category:    "Technology Lookup",
			Description: "Identify the tech stack behind websites.",
			Tags:        []string{"stack", "recon", "fingerprinting"},
			Trending:    64,
		},
		{
			ID:          "dnsdumpster",
			Name:        "DNSDumpster",
			URL:         "https://dnsdumpster.com/",
			Category:    "DNS",
			Description: "Enumerate subdomains, DNS records and infrastructure mapping.",
			Tags:        []string{"dns", "subdomains", "mapping"},
			Trending:    70,
		},
		{
			ID:          "osintframework",
			Name:        "OSINT Framework",
			URL:         "https://osintframework.com/",
			Category:    "Meta",
			Description: "A directory of OSINT resources organized by topics.",
			Tags:        []string{"directory", "reference"},
			Trending:    83,
		},
	}
}

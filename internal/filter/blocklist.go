package filter

// blockedDomains contains email domains that never belong to a real
// contact: tracking and error-monitoring services, site-builder platforms,
// CDNs and hosting providers, social networks, font services, and
// placeholder domains from design templates.
//
// Subdomains of these are also blocked (suffix match on "." + domain).
var blockedDomains = []string{
	"sentry.io",
	"sentry.wixpress.com",
	"sentry-next.wixpress.com",
	"ingest.sentry.io",
	"newrelic.com",
	"rollbar.com",
	"datadoghq.com",
	"bugsnag.com",
	"wordpress.com",
	"wordpress.org",
	"wpengine.com",
	"wix.com",
	"squarespace.com",
	"shopify.com",
	"shopifyemail.com",
	"bigcommerce.com",
	"weebly.com",
	"webflow.io",
	"ghost.org",
	"godaddy.com",
	"cloudflare.com",
	"cloudfront.net",
	"amazonaws.com",
	"azure.com",
	"digitalocean.com",
	"linode.com",
	"heroku.com",
	"netlify.app",
	"vercel.app",
	"render.com",
	"cloudwaysapps.com",
	"facebook.com",
	"instagram.com",
	"linkedin.com",
	"twitter.com",
	"x.com",
	"youtube.com",
	"tiktok.com",
	"pinterest.com",
	"fonts.googleapis.com",
	"use.typekit.net",
	"latofonts.com",
	"fontsquirrel.com",
	"myfonts.com",
	"antsoup.com",
	"example.com",
	"domain.com",
	"email.com",
	"mysite.com",
	"sample.com",
	"test.com",
	"yoursite.com",
	"companyname.com",
	"business.com",
	"website.com",
	"businessname.com",
	"company.com",
	"info.com",
	"domain.co",
	"domain.net",
}

// blockedLocalParts contains generic or placeholder local parts that
// indicate template text rather than a reachable mailbox.
var blockedLocalParts = []string{
	"noreply",
	"no-reply",
	"donotreply",
	"do-not-reply",
	"firstname",
	"lastname",
	"yourname",
	"fullname",
	"username",
	"user.name",
	"johnsmith",
	"john.doe",
	"alex.smith",
	"user",
	"filler",
	"placeholder",
	"your",
	"name",
	"email",
}

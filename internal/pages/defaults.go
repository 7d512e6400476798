package pages

// builtinPages are served when the pages directory is missing, and fill in
// any of these slugs the directory does not provide.
var builtinPages = map[string]string{
	HomeSlug: `---
title: Home
description: Websites, search and marketing that grow your business.
order: 0
nav: false
---
We design, build and grow websites for ambitious businesses.
`,
	"about": `---
title: About
description: Who we are and how we work.
order: 10
---
## About us

We are a small team of designers, developers and marketers. We work in short
iterations and measure everything we ship.
`,
	"services": `---
title: Services
description: What we can do for you.
order: 20
---
## Services

From a first sketch to ongoing campaigns, we cover the whole lifecycle of your
site.
`,
	"portfolio": `---
title: Portfolio
description: Selected work.
order: 30
---
## Portfolio

A selection of recent projects for clients in retail, healthcare and
education.
`,
	"contact": `---
title: Contact
description: Tell us about your project.
order: 40
---
## Contact

Send us a message using the form below and we will get back to you within one
business day.
`,
}

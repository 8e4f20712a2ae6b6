package mcpserver

// ProductFormatContract describes the product record format that LLM
// consumers should follow when saving products.
const ProductFormatContract = `# Product Format

Every product in the catalog is normalized into this shape. Saving never
fails on bad input: unknown values fall back to the defaults below.

## Fields

| field       | type            | default    | notes                                        |
|-------------|-----------------|------------|----------------------------------------------|
| id          | string          | generated  | 24 hex chars when generated; keep it to edit |
| name        | string          | ""         | display name                                 |
| subtitle    | string          | ""         | one-line tagline                             |
| collection  | string          | ""         | season or line                               |
| category    | enum            | women      | women, men, accessory (accessories accepted)  |
| materials   | string          | ""         | free text                                    |
| sizes       | string          | ""         | free text                                    |
| technique   | string          | ""         | free text                                    |
| description | string          | ""         | long text                                    |
| status      | enum            | available  | available, made_to_order, archived           |
| hours       | number or empty | empty      | artisan hours; negative values are dropped   |
| price_mode  | enum            | hidden     | visible publishes the price                  |
| price_value | number or empty | empty      | kept even while hidden                       |
| price_currency | string       | USD        |                                              |
| images      | list of paths   | []         | first image is the cover                     |

## Rules

1. Archived products never appear on the runway but stay in the catalog.
2. The legacy status "loom" means made_to_order.
3. Saving with an existing id updates that product in place and changes only
   the fields passed; a new id is placed first in the catalog.
4. Image paths point under assets/images/ with lowercase, dash-separated
   names (e.g. ` + "`" + `assets/images/vestido-azul.jpg` + "`" + `). Use the
   stage_image tool to get the exact path for an upload.
5. A new product saved without images takes the staged image paths.
   list_images and unstage_image manage the staged set; bundle_images zips it.
`

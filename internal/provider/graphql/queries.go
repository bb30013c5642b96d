package graphql

// Queries against the Thoth GraphQL API. The field list matches workResponse;
// the two must change together.

const workFields = `
workId
workType
workStatus
title
subtitle
fullTitle
reference
edition
doi
publicationDate
place
pageCount
landingPage
license
coverUrl
shortAbstract
longAbstract
updatedAtWithRelations
imprint {
    imprintId
    imprintName
    publisher {
        publisherId
        publisherName
        publisherUrl
    }
}
contributions {
    contributionType
    fullName
    firstName
    lastName
    mainContribution
    contributionOrdinal
    contributor {
        orcid
    }
}
subjects {
    subjectType
    subjectCode
    subjectOrdinal
}
languages {
    languageCode
    languageRelation
    mainLanguage
}
issues {
    issueOrdinal
    series {
        seriesType
        seriesName
        issnPrint
        issnDigital
    }
}
publications {
    publicationType
    isbn
    widthMm
    heightMm
    depthMm
    weightG
    prices {
        currencyCode
        unitPrice
    }
}`

const workQuery = `query WorkQuery($workId: Uuid!) {
    work(workId: $workId) {` + workFields + `
    }
}`

const worksQuery = `query WorksQuery($publishers: [Uuid!], $limit: Int!, $offset: Int!) {
    works(publishers: $publishers, limit: $limit, offset: $offset, order: {field: UPDATED_AT_WITH_RELATIONS, direction: DESC}) {` + workFields + `
    }
}`

const workLastUpdatedQuery = `query WorkLastUpdatedQuery($workId: Uuid!) {
    work(workId: $workId) {
        updatedAtWithRelations
    }
}`

const worksLastUpdatedQuery = `query WorksLastUpdatedQuery($publishers: [Uuid!]) {
    works(publishers: $publishers, limit: 1, offset: 0, order: {field: UPDATED_AT_WITH_RELATIONS, direction: DESC}) {
        updatedAtWithRelations
    }
}`
